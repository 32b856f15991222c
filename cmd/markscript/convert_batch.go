package main

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	markscript "github.com/alnah/go-markscript"
	"github.com/alnah/go-markscript/internal/fileutil"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Status      fileutil.WriteStatus
	PDFPath     string
	PDFStatus   fileutil.WriteStatus
	Diagnostics int
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently using the converter pool.
// Results are returned in input order.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				for idx := range jobs {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: err}
				}
				return
			}
			defer pool.Release(conv)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{InputPath: files[idx].InputPath, Err: ctx.Err()}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	finish := func(err error) ConversionResult {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}

	if info, err := os.Stat(f.InputPath); err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadInput, err))
	} else if info.Size() > MaxDocumentSize {
		return finish(fmt.Errorf("%w: %s is %d bytes (max %d)", ErrDocumentTooLarge, f.InputPath, info.Size(), MaxDocumentSize))
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		return finish(fmt.Errorf("%w: %v", ErrReadInput, err))
	}

	res, err := conv.Convert(ctx, markscript.Input{
		Document: string(content),
		PDF:      params.pdf,
		Page:     params.page,
	})
	if err != nil {
		return finish(err)
	}
	result.Diagnostics = len(res.Diagnostics)
	logDiagnostics(params.logger, f.InputPath, res.Diagnostics)

	return finish(writeOutputs(&result, res))
}

// ResultSummary counts conversions by outcome.
type ResultSummary struct {
	Created   int
	Updated   int
	Unchanged int
	Failed    int
}

// countResults tallies conversions by page write status.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case r.Status == fileutil.Created:
			summary.Created++
		case r.Status == fileutil.Updated:
			summary.Updated++
		default:
			summary.Unchanged++
		}
	}
	return summary
}

// printResults outputs conversion results and returns the failure count.
func printResults(results []ConversionResult, quiet, verbose bool, env *Environment) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s %s -> %s (%v, %d diagnostics)\n",
				r.Status, r.InputPath, r.OutputPath, r.Duration.Round(time.Millisecond), r.Diagnostics)
		} else {
			fmt.Fprintf(env.Stdout, "%s %s\n", r.Status, r.OutputPath)
		}
		if r.PDFPath != "" {
			fmt.Fprintf(env.Stdout, "%s %s\n", r.PDFStatus, r.PDFPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d created, %d updated, %d unchanged, %d failed\n",
			summary.Created, summary.Updated, summary.Unchanged, summary.Failed)
	}
	return summary.Failed
}
