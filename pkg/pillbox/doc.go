// Package pillbox provides a client for the NLM Pillbox pill-identification
// service.
//
// # Overview
//
// Pillbox (http://pillbox.nlm.nih.gov) identifies solid oral medications by
// their physical characteristics. A search is a single GET request whose
// query describes the pill; the service answers with an XML document of
// matching pills, or with the literal text "No records found".
//
// # Usage
//
//	client, err := pillbox.New(apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.Search(ctx, pillbox.SearchParams{
//	    Color: pillbox.ByName("blue"),
//	    Shape: pillbox.ByCode("C48348"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if res.NoRecords {
//	    fmt.Println("nothing found")
//	}
//	for _, p := range res.Pills {
//	    fmt.Println(p.Description(), p.Imprint())
//	}
//
// # Code Tables
//
// Shape and color are FDA SPL codes on the wire. [Shapes] and [Colors]
// translate between codes and names in both directions. Search values may be
// given either way; see [Classification].
//
// # Pills
//
// [Pill] keeps the raw text of each field and decodes on access:
//
//   - Color, Shape: SPL code resolved to its name
//   - Score: integer
//   - Size: exact decimal millimetres ([decimal.Decimal])
//   - Ingredients: split on "; "
//   - Image: download URL at one of four sizes
//
// # Errors
//
// Failures carry a code from [errors] so callers can tell a bad lookup from a
// bad response or a network problem:
//
//   - UNRECOGNIZED_CLASSIFICATION: unknown shape or color
//   - UNRECOGNIZED_IMAGE_SIZE: size other than super_small, small, medium, large
//   - RESPONSE_PARSE_ERROR: body is not "No records found" and not valid XML
//   - NUMERIC_FIELD_ERROR: score or size text is not a number
//   - NETWORK_ERROR: transport failure or non-2xx status
//
// [decimal.Decimal]: https://pkg.go.dev/github.com/shopspring/decimal#Decimal
// [errors]: github.com/matzehuels/pillbox/pkg/errors
package pillbox
