package shell

import (
	"github.com/chzyer/readline"

	"depman/internal/command"
)

// maxDependCompletions bounds how many DEPEND arguments get name completion.
const maxDependCompletions = 8

// completer completes keywords, shell commands and component names. Names are
// read from the graph on every TAB press, so components declared during the
// session are offered immediately.
func (s *Shell) completer() *readline.PrefixCompleter {
	known := readline.PcItemDynamic(s.knownNames)

	// DEPEND takes any number of names; nest one dynamic level per argument.
	var depend readline.PrefixCompleterInterface = readline.PcItemDynamic(s.knownNames)
	for i := 1; i < maxDependCompletions; i++ {
		depend = readline.PcItemDynamic(s.knownNames, depend)
	}

	keywords := make([]readline.PrefixCompleterInterface, 0, len(command.Keywords))
	for _, k := range command.Keywords {
		keywords = append(keywords, readline.PcItem(string(k)))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(string(command.KeywordDepend), depend),
		readline.PcItem(string(command.KeywordInstall), known),
		readline.PcItem(string(command.KeywordRemove), readline.PcItemDynamic(s.installedNames)),
		readline.PcItem(string(command.KeywordList)),
		readline.PcItem(string(command.KeywordEnd)),
		readline.PcItem("help", keywords...),
		readline.PcItem("status"),
		readline.PcItem("reset"),
		readline.PcItem("exit"),
		readline.PcItem("quit"),
	)
}

func (s *Shell) knownNames(string) []string {
	ids := s.manager.Graph().Names()
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		names = append(names, string(id))
	}
	return names
}

func (s *Shell) installedNames(string) []string {
	return s.manager.Installed()
}
