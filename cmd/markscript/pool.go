package main

import (
	"context"

	markscript "github.com/alnah/go-markscript"
)

// CLIConverter is the part of markscript.Converter the CLI uses.
type CLIConverter interface {
	Convert(ctx context.Context, input markscript.Input) (*markscript.ConvertResult, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*markscript.Converter)(nil)

// Pool abstracts the converter pool for testability.
type Pool interface {
	Acquire() (CLIConverter, error)
	Release(CLIConverter)
	Size() int
	Close() error
}

// converterPool adapts markscript.ConverterPool to Pool.
type converterPool struct {
	*markscript.ConverterPool
}

func newConverterPool(size int, opts ...markscript.Option) (Pool, error) {
	p, err := markscript.NewConverterPool(size, opts...)
	if err != nil {
		return nil, err
	}
	return converterPool{p}, nil
}

func (p converterPool) Acquire() (CLIConverter, error) {
	conv, err := p.ConverterPool.Acquire()
	if err != nil {
		return nil, err
	}
	return conv, nil
}

func (p converterPool) Release(c CLIConverter) {
	if conv, ok := c.(*markscript.Converter); ok {
		p.ConverterPool.Release(conv)
	}
}
