package main

import (
	_ "github.com/dcallow/storefront/cmd/cli/posts"
	"github.com/dcallow/storefront/cmd/cli/root"
)

func main() {
	root.Execute()
}
