package config

// Account is a resolved view over one entry of the "accounts" section.
type Account struct {
	Label  string
	ID     string
	Region string
}

// NewAccount resolves an account label against the document. If region is
// empty, the pipeline region is used.
func NewAccount(doc Document, label string, region string) (*Account, error) {
	id, ok := AccountIDFromLabel(doc, label)
	if !ok {
		return nil, &ConfigError{Key: "accounts." + label, Reason: "unknown account label"}
	}
	if region == "" {
		region, _ = doc.StringAt("pipeline", "region")
	}
	return &Account{Label: label, ID: id, Region: region}, nil
}

// AccountIDFromLabel returns the numeric account id configured for a label.
// An absent label is not an error: the second return value reports whether
// the label was found, so callers can do best-effort lookups.
func AccountIDFromLabel(doc Document, label string) (string, bool) {
	return doc.StringAt("accounts", label, "id")
}

// AccountLabelFromID is the reverse lookup of AccountIDFromLabel. If several
// labels share the same account id, which one is returned is unspecified.
func AccountLabelFromID(doc Document, id string) (string, bool) {
	accounts, ok := doc.Section("accounts")
	if !ok {
		return "", false
	}
	for label := range accounts {
		if accountID, ok := doc.StringAt("accounts", label, "id"); ok && accountID == id {
			return label, true
		}
	}
	return "", false
}
