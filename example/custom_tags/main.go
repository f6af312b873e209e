// Copyright 2026 The yamldoc Authors
// SPDX-License-Identifier: Apache-2.0

// Extend the core schema with a custom !duration tag.
package main

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/yamldoc/yamldoc"
)

func main() {
	duration := &yamldoc.TagResolver{
		Tag:      "!duration",
		NodeKind: yamldoc.ScalarType,
		Test:     regexp.MustCompile(`^\d+(?:ns|us|ms|s|m|h)$`),
		Resolve: func(raw string, _ *yamldoc.Options) (any, error) {
			return time.ParseDuration(raw)
		},
	}

	v, err := yamldoc.Parse("timeout: 30s\n", yamldoc.WithCustomTags(duration))
	if err != nil {
		log.Fatal(err)
	}
	m := v.(map[string]any)
	fmt.Printf("timeout: %v (%T)\n", m["timeout"], m["timeout"])
}
