package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGoFile(t *testing.T, root, rel, body string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestRepositoryHonoursBoundaries(t *testing.T) {
	t.Chdir("..")
	assert.Empty(t, collectViolations("contexts"))
}

func TestCollectViolations(t *testing.T) {
	root := t.TempDir()
	t.Chdir(root)

	writeGoFile(t, root, "contexts/listings/property-service/domain/services/ok.go", `package services

import (
	"strings"

	"estatehub/contexts/identity-access/access-policy/domain/entities"
	"estatehub/contexts/listings/property-service/domain/errors"
)

var _ = strings.TrimSpace
var _ = entities.RoleAdmin
var _ = errors.New
`)
	writeGoFile(t, root, "contexts/listings/property-service/domain/services/bad.go", `package services

import (
	"estatehub/contexts/engagement/notification-service/ports"
	"estatehub/internal/platform/db"
	"gorm.io/gorm"
)
`)
	writeGoFile(t, root, "contexts/listings/property-service/application/commands/bad.go", `package commands

import "estatehub/contexts/listings/property-service/adapters/memory"
`)
	writeGoFile(t, root, "contexts/listings/property-service/transport/http/bad.go", `package http

import "github.com/google/uuid"
`)
	writeGoFile(t, root, "contexts/listings/property-service/adapters/postgres/ok.go", `package postgres

import (
	"estatehub/internal/platform/db"
	"gorm.io/gorm"
)
`)
	writeGoFile(t, root, "contexts/listings/property-service/domain/services/ignored_test.go", `package services

import "gorm.io/gorm"
`)

	rules := map[string]int{}
	for _, v := range collectViolations("contexts") {
		rules[v.Rule]++
	}
	assert.Equal(t, map[string]int{
		"cross-module imports are forbidden":               1,
		"domain import is outside explicit allowlist":      3,
		"domain must not import runtime infrastructure":    1,
		"application must not import adapters":             1,
		"application import is outside explicit allowlist": 1,
		"transport import is outside explicit allowlist":   1,
	}, rules)
}
