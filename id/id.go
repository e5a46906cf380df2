// Package id provides ID generation helpers for the gene pool.
package id

import (
	nanoid "github.com/matoous/go-nanoid/v2"
)

const DefaultLength = 21

const (
	PrefixGene   = "gene"
	PrefixPrompt = "prompt"
)

func New(prefix string) string {
	id, err := nanoid.New(DefaultLength)
	if err != nil {
		panic("nanoid generation failed: " + err.Error())
	}
	return prefix + "_" + id
}

func NewGene() string   { return New(PrefixGene) }
func NewPrompt() string { return New(PrefixPrompt) }
