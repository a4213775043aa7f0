package diagnosis

// Diagnosis is one CIE-10 catalog entry.
type Diagnosis struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Synonyms    []string `json:"synonyms"`
}
