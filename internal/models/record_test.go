package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordString(t *testing.T) {
	r := Record{"name": "Ada", "count": 3}

	assert.Equal(t, "Ada", r.String("name"))
	assert.Equal(t, "", r.String("missing"))
	assert.Equal(t, "", r.String("count"))
}

func TestRecordBool(t *testing.T) {
	r := Record{"is_active": false, "name": "Ada"}

	assert.False(t, r.Bool("is_active", true))
	assert.True(t, r.Bool("missing", true))
	assert.False(t, r.Bool("missing", false))
	assert.True(t, r.Bool("name", true))
}

func TestRecordClone(t *testing.T) {
	r := Record{"id": "a-1", "company": "Acme"}

	c := r.Clone()
	c["company"] = "Other"

	assert.Equal(t, "Acme", r.String("company"))
	assert.Equal(t, "Other", c.String("company"))
}
