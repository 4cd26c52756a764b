package main

import (
	"github.com/jgbaldwinbrown/hicpair/register/pkg"
)

func main() {
	register.FullRegister()
}
