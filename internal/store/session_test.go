package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapKV is an in-memory stand-in for the sqlite-backed local store.
type mapKV struct{ m map[string]string }

func newMapKV() *mapKV                         { return &mapKV{m: make(map[string]string)} }
func (k *mapKV) Get(key string) (string, bool) { v, ok := k.m[key]; return v, ok }
func (k *mapKV) Put(key, value string)         { k.m[key] = value }
func (k *mapKV) Delete(key string)             { delete(k.m, key) }

func TestSessionSignInSeedsDemoTenant(t *testing.T) {
	s := NewSession(NewBus(), newMapKV(), "test-secret", time.Hour)

	state := s.SignIn("dueño@comanda.test", false)

	assert.True(t, state.IsAuthenticated)
	require.Len(t, state.Tenants, 1)
	assert.Equal(t, "Demo Restaurant", state.Tenants[0].Name)
	assert.Equal(t, state.Tenants[0].ID, state.CurrentTenantID)

	// Signing in again does not seed a second tenant.
	state = s.SignIn("dueño@comanda.test", false)
	assert.Len(t, state.Tenants, 1)
}

func TestSessionTokenIsParseablePlaceholder(t *testing.T) {
	kv := newMapKV()
	s := NewSession(NewBus(), kv, "test-secret", time.Hour)

	state := s.SignIn("dueño@comanda.test", false)
	require.NotEmpty(t, state.Token)
	assert.True(t, s.ValidToken(state.Token))
	assert.False(t, s.ValidToken("garbage"))

	stored, ok := kv.Get(KeySessionToken)
	require.True(t, ok)
	assert.Equal(t, state.Token, stored)
}

func TestSessionSignOutResetsToZeroState(t *testing.T) {
	kv := newMapKV()
	s := NewSession(NewBus(), kv, "test-secret", time.Hour)

	s.SignIn("dueño@comanda.test", true)
	s.SignOut()

	state := s.Current()
	assert.False(t, state.IsAuthenticated)
	assert.Empty(t, state.Tenants)
	assert.Empty(t, state.Token)
	assert.False(t, s.Authenticated())

	_, ok := kv.Get(KeySessionToken)
	assert.False(t, ok, "token must be dropped on sign-out")

	// The remembered email survives sign-out.
	assert.Equal(t, "dueño@comanda.test", s.RememberedEmail())
}

func TestSessionRememberToggle(t *testing.T) {
	s := NewSession(NewBus(), newMapKV(), "test-secret", time.Hour)

	s.SignIn("dueño@comanda.test", true)
	assert.Equal(t, "dueño@comanda.test", s.RememberedEmail())

	// Signing in without remember clears the stored email.
	s.SignIn("otro@comanda.test", false)
	assert.Empty(t, s.RememberedEmail())
}

func TestSessionSelectTenant(t *testing.T) {
	s := NewSession(NewBus(), nil, "test-secret", time.Hour)
	state := s.SignIn("dueño@comanda.test", false)

	s.SelectTenant("unknown")
	assert.Equal(t, state.CurrentTenantID, s.Current().CurrentTenantID)

	s.SelectTenant(state.Tenants[0].ID)
	assert.Equal(t, state.Tenants[0].ID, s.Current().CurrentTenantID)
}
