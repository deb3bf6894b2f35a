package ports

import "context"

// Packager assembles a built wheel into a self-contained executable package.
//
//go:generate go run go.uber.org/mock/mockgen -source=packager.go -destination=mocks/mock_packager.go -package=mocks
type Packager interface {
	// Package writes an executable package for the interpreter to dest.
	Package(ctx context.Context, wheel, interpreter, dest string) error
}
