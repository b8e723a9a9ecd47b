package main

import (
	"github.com/pjhades/nvbuild/cmd/nvbuild/internal"
)

func main() {
	internal.Execute()
}
