package diff

// Report is the structured form of a diff between two site inputs.
type Report struct {
	Old    string `json:"old" yaml:"old"`
	New    string `json:"new" yaml:"new"`
	Result Result `json:"result" yaml:"result"`
}
