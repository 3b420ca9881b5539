package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	chordsheet "github.com/alnah/go-chordsheet"
)

// songResult is the outcome of one songJob. Output is the file actually
// written: the PDF, or the HTML in --html-only mode.
type songResult struct {
	Source   string
	Output   string
	Err      error
	Duration time.Duration
}

// convertBatch renders jobs with at most pool.Size() in flight. Each job
// borrows a converter for its own duration. Results keep the order of jobs.
func convertBatch(ctx context.Context, pool Pool, jobs []songJob, params *conversionParams) []songResult {
	if len(jobs) == 0 {
		return nil
	}

	results := make([]songResult, len(jobs))
	var g errgroup.Group
	g.SetLimit(min(pool.Size(), len(jobs)))

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = runJob(ctx, pool, job, params)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runJob borrows a converter, renders job and returns it.
func runJob(ctx context.Context, pool Pool, job songJob, params *conversionParams) songResult {
	if err := ctx.Err(); err != nil {
		return songResult{Source: job.Source, Err: err}
	}

	conv, err := pool.Acquire()
	if err != nil {
		return songResult{Source: job.Source, Err: err}
	}
	defer pool.Release(conv)

	start := time.Now()
	res := convertSong(ctx, conv, job, params)
	res.Duration = time.Since(start)
	return res
}

// convertSong reads job.Source, converts it and writes the outputs.
func convertSong(ctx context.Context, conv CLIConverter, job songJob, params *conversionParams) songResult {
	res := songResult{Source: job.Source, Output: job.Output}

	content, err := os.ReadFile(job.Source) // #nosec G304 -- discovered path
	if err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		return res
	}

	if err := os.MkdirAll(filepath.Dir(job.Output), dirPermissions); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrCreateOutputDir, err)
		return res
	}

	out, err := conv.Convert(ctx, chordsheet.Input{
		Markdown:  string(content),
		SourceDir: filepath.Dir(job.Source),
		Page:      params.page,
		HTMLOnly:  params.htmlOnly,
	})
	if err != nil {
		res.Err = err
		return res
	}

	if params.htmlOnly || params.htmlOutput {
		htmlPath := htmlSibling(job.Output)
		// #nosec G306 -- song sheets are meant to be readable
		if err := os.WriteFile(htmlPath, out.HTML, filePermissions); err != nil {
			res.Err = fmt.Errorf("%w: %w", ErrWriteHTML, err)
			return res
		}
		if params.htmlOnly {
			res.Output = htmlPath
			return res
		}
	}

	// #nosec G306 -- song sheets are meant to be readable
	if err := os.WriteFile(job.Output, out.PDF, filePermissions); err != nil {
		res.Err = fmt.Errorf("%w: %w", ErrWritePDF, err)
	}
	return res
}

// batchSummary counts the outcomes of a batch.
type batchSummary struct {
	Succeeded int
	Failed    int
	Err       error // first failure in job order
}

func summarize(results []songResult) batchSummary {
	var s batchSummary
	for _, r := range results {
		if r.Err == nil {
			s.Succeeded++
			continue
		}
		s.Failed++
		if s.Err == nil {
			s.Err = r.Err
		}
	}
	return s
}

// printResults reports failures on stderr and, unless quiet, successes on
// stdout, followed by a tally when more than one song was converted.
func printResults(results []songResult, quiet, verbose bool, env *Environment) batchSummary {
	s := summarize(results)

	for _, r := range results {
		switch {
		case r.Err != nil:
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Source, r.Err)
		case quiet:
		case verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Source, r.Output, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Created %s\n", r.Output)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", s.Succeeded, s.Failed)
	}
	return s
}
