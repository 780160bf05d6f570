package entity

// Operadores de LogicRule.
type RuleOperator string

const (
	OpEquals      RuleOperator = "equals"
	OpNotEquals   RuleOperator = "not_equals"
	OpContains    RuleOperator = "contains"
	OpGreaterThan RuleOperator = "greater_than"
	OpLessThan    RuleOperator = "less_than"
	OpIsEmpty     RuleOperator = "is_empty"
	OpIsNotEmpty  RuleOperator = "is_not_empty"
)

// Acciones de LogicRule.
type RuleAction string

const (
	ActionSkipTo    RuleAction = "skip_to"
	ActionHideBlock RuleAction = "hide_block"
	ActionEndForm   RuleAction = "end_form"
)

// Form formulario con su secuencia natural de campos.
type Form struct {
	ID        string
	CompanyID string
	Title     string
	Fields    []FormField // ordenados por Position
}

// FormField campo de un formulario. BlockID agrupa campos que se ocultan juntos.
type FormField struct {
	ID       string
	FormID   string
	BlockID  string
	Label    string
	Position int
}

// LogicRule regla declarativa de ramificación. SortOrder define la precedencia.
type LogicRule struct {
	ID            string
	FormID        string
	SourceFieldID string
	Operator      RuleOperator
	Value         any
	Action        RuleAction
	TargetFieldID string
	SortOrder     int
}

// ValidOperator informa si op es un operador soportado.
func ValidOperator(op RuleOperator) bool {
	switch op {
	case OpEquals, OpNotEquals, OpContains, OpGreaterThan, OpLessThan, OpIsEmpty, OpIsNotEmpty:
		return true
	}
	return false
}

// ValidAction informa si a es una acción soportada.
func ValidAction(a RuleAction) bool {
	switch a {
	case ActionSkipTo, ActionHideBlock, ActionEndForm:
		return true
	}
	return false
}
