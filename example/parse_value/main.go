// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Parse a YAML document all the way to native Go values.
package main

import (
	"fmt"
	"log"

	"github.com/yamldoc/yamldoc"
)

const source = `
service: billing
replicas: 3
ports:
  - 8080
  - 8443
limits:
  memory: 512
  cpu: 0.5
`

func main() {
	v, err := yamldoc.Parse(source)
	if err != nil {
		log.Fatal(err)
	}
	m := v.(map[string]any)
	fmt.Println("service:", m["service"])
	fmt.Println("replicas:", m["replicas"])
	fmt.Println("ports:", m["ports"])
}
