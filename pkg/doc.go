// Package pkg holds the public libraries of pillbox, a client for the NLM
// Pillbox pill-identification service.
//
// # Overview
//
// The service answers one kind of query: find solid oral medications by
// color, shape, imprint data and active ingredient. The packages are:
//
//  1. [pillbox] - Client, search parameters, SPL code tables and pill records
//  2. [errors] - Structured error codes shared by every package
//  3. [observability] - Hooks for metrics and tracing of searches
//  4. [pillboxtest] - A fake service for tests
//  5. [buildinfo] - Version information set at build time
//
// # Data Flow
//
//	SearchParams (names or SPL codes)
//	         ↓
//	    [pillbox.CodeTable] resolves color and shape to codes
//	         ↓
//	    one GET <base-url>?key=...&color=...
//	         ↓
//	    XML document or "No records found"
//	         ↓
//	    [pillbox.Result] holding []*Pill
//
// # Quick Start
//
//	import "github.com/matzehuels/pillbox/pkg/pillbox"
//
//	client, err := pillbox.New(os.Getenv("PILLBOX_API_KEY"))
//	if err != nil {
//	    return err
//	}
//	res, err := client.Search(ctx, pillbox.SearchParams{
//	    Color: pillbox.ByName("blue"),
//	    Shape: pillbox.ByName("round"),
//	})
//	if err != nil {
//	    return err
//	}
//	for _, p := range res.Pills {
//	    url, _ := p.Image("medium")
//	    fmt.Println(p.Description(), url)
//	}
//
// # Error Handling
//
// Every failure carries an [errors.Code]; match with [errors.Is]:
//
//	if errors.Is(err, errors.ErrCodeUnrecognizedClassification) {
//	    // the color or shape is not in the code table
//	}
//
// [pillbox]: github.com/matzehuels/pillbox/pkg/pillbox
// [errors]: github.com/matzehuels/pillbox/pkg/errors
// [observability]: github.com/matzehuels/pillbox/pkg/observability
// [pillboxtest]: github.com/matzehuels/pillbox/pkg/pillboxtest
// [buildinfo]: github.com/matzehuels/pillbox/pkg/buildinfo
// [pillbox.CodeTable]: github.com/matzehuels/pillbox/pkg/pillbox.CodeTable
// [pillbox.Result]: github.com/matzehuels/pillbox/pkg/pillbox.Result
// [errors.Code]: github.com/matzehuels/pillbox/pkg/errors.Code
// [errors.Is]: github.com/matzehuels/pillbox/pkg/errors.Is
package pkg
