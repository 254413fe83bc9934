// Command enumvet runs the enumcheck analyzer in the go vet style:
//
//	go vet -vettool=$(which enumvet) ./...
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/olehluchkiv/enumcheck/internal/enumvet"
)

func main() {
	singlechecker.Main(enumvet.Analyzer)
}
