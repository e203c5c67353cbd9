package main

import (
	"rombuilder/internal/rombuild"
)

func main() {
	rombuild.Main()
}
