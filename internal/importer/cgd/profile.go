package cgd

// layout names the header cells of one CGD CSV export. A layout has either a signed amount column
// or a debit/credit pair.
type layout struct {
	name        string
	date        string
	description string
	signed      string
	debit       string
	credit      string
}

func (l layout) headers() []string {
	if l.signed != "" {
		return []string{l.date, l.description, l.signed}
	}

	return []string{l.date, l.description, l.debit, l.credit}
}

// layouts are tried in order. The card statement comes first: its "Data" header would otherwise
// never be considered once "Data mov." matched.
var layouts = []layout{
	{name: "cartão", date: "Data", description: "Descrição", debit: "Débito", credit: "Crédito"},
	{name: "extrato", date: "Data mov.", description: "Descrição", signed: "Movimento"},
	{name: "conta", date: "Data mov.", description: "Descrição", signed: "Montante"},
}

// columns holds the positions of a layout's headers within a statement.
type columns struct {
	date, description     int
	signed, debit, credit int
}

// locate reports where l's headers sit in header, if they are all present.
func (l layout) locate(header []string) (columns, bool) {
	pos := make(map[string]int, len(header))

	for i, cell := range header {
		if name := trimCell(cell); name != "" {
			pos[name] = i
		}
	}

	for _, h := range l.headers() {
		if _, ok := pos[h]; !ok {
			return columns{}, false
		}
	}

	at := func(name string) int {
		if i, ok := pos[name]; ok && name != "" {
			return i
		}

		return -1
	}

	return columns{
		date:        at(l.date),
		description: at(l.description),
		signed:      at(l.signed),
		debit:       at(l.debit),
		credit:      at(l.credit),
	}, true
}
