package rules

type Group struct {
	Name  string
	Rules []Rule
}

// Rule is either a recording rule (Record set) or an alerting rule
// (Alert set); the serializer keys off whichever name is present.
type Rule struct {
	Record      string
	Alert       string
	Expr        string
	Labels      []Label
	Annotations []Label
}

// Label order is part of the output contract.
type Label struct {
	Name  string
	Value string
}
