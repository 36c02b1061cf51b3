package processor

// Example is one labeled description waiting to be learned.
type Example struct {
	Label       string `json:"label" yaml:"label"`
	Description string `json:"description" yaml:"description"`
}
