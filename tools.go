//go:build tools

package pubsub

// Pins build/lint tooling so that go.mod tracks the versions used in CI
import (
	_ "golang.org/x/tools/cmd/goimports"
	_ "honnef.co/go/tools/cmd/staticcheck"
)
