package types

type Organisation struct {
	ContentID    string
	Title        string
	Abbreviation string
}

// DisplayName is the title with the abbreviation appended when one
// exists, matching how departments refer to themselves.
func (o *Organisation) DisplayName() string {
	if o.Abbreviation != "" && o.Abbreviation != o.Title {
		return o.Title + " [" + o.Abbreviation + "]"
	}
	return o.Title
}
