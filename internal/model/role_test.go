package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range Roles() {
		assert.True(t, r.Valid(), r)
	}

	for _, bad := range []Role{"", "admin", "freelancer", "Client"} {
		assert.False(t, bad.Valid(), bad)
	}
}

func TestRole_SelfService(t *testing.T) {
	assert.True(t, RoleFreelancer.SelfService())
	assert.True(t, RoleEmployer.SelfService())
	assert.False(t, RoleAdmin.SelfService())
	assert.False(t, Role("Client").SelfService())
}
