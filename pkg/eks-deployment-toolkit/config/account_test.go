package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleAccountsDocument() Document {
	return Document{
		"pipeline": map[string]any{
			"account": "tooling",
			"region":  "eu-west-1",
		},
		"accounts": map[string]any{
			"tooling": map[string]any{"id": "111111111111"},
			"dev":     map[string]any{"id": "222222222222"},
		},
	}
}

func TestAccountIDFromLabel(t *testing.T) {
	doc := sampleAccountsDocument()

	id, found := AccountIDFromLabel(doc, "dev")
	assert.True(t, found)
	assert.Equal(t, "222222222222", id)

	_, found = AccountIDFromLabel(doc, "prod")
	assert.False(t, found, "an absent label should report not-found, not fail")

	_, found = AccountIDFromLabel(Document{}, "dev")
	assert.False(t, found, "a document without an accounts section should report not-found")
}

func TestAccountLabelFromID(t *testing.T) {
	doc := sampleAccountsDocument()

	label, found := AccountLabelFromID(doc, "111111111111")
	assert.True(t, found)
	assert.Equal(t, "tooling", label)

	_, found = AccountLabelFromID(doc, "999999999999")
	assert.False(t, found)
}

func TestNewAccount(t *testing.T) {
	doc := sampleAccountsDocument()

	account, err := NewAccount(doc, "dev", "us-west-2")
	assert.NoError(t, err)
	assert.Equal(t, &Account{Label: "dev", ID: "222222222222", Region: "us-west-2"}, account)

	account, err = NewAccount(doc, "tooling", "")
	assert.NoError(t, err)
	assert.Equal(t, "eu-west-1", account.Region, "an empty region should fall back to the pipeline region")

	_, err = NewAccount(doc, "prod", "")
	assert.Error(t, err)
	var configErr *ConfigError
	assert.ErrorAs(t, err, &configErr)
}
