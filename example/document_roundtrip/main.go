// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Edit a document through the node model and write it back out.
package main

import (
	"fmt"
	"log"

	"github.com/yamldoc/yamldoc"
)

const source = `# deployment settings
name: api
replicas: 2
`

func main() {
	doc, err := yamldoc.ParseDocument(source)
	if err != nil {
		log.Fatal(err)
	}
	if err := doc.FirstError(); err != nil {
		log.Fatal(err)
	}

	// Bump the replica count in place.
	yamldoc.Visit(doc.Contents, func(key any, n yamldoc.Node, _ []yamldoc.Node) yamldoc.VisitAction {
		if key == "value" {
			if s, ok := n.(*yamldoc.Scalar); ok && s.Value == int64(2) {
				return yamldoc.VisitReplace(&yamldoc.Scalar{Value: int64(5)})
			}
		}
		return yamldoc.VisitContinue()
	})

	out, err := yamldoc.Stringify(doc)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Print(out)
}
