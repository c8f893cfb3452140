// Package schemafile loads origin schemas from YAML or JSON documents.
//
// A document names a root struct and lists named type definitions:
//
//	version: "1"
//	root: Event
//	types:
//	  - name: Event
//	    fields:
//	      - name: id
//	        type: string
//	      - name: view
//	        ref: View
//	      - name: tags
//	        dictionary:
//	          key: {type: string}
//	          value: {type: string}
//	  - name: Source
//	    cases: [android, ios, browser]
//
// Each field type sets exactly one selector:
//   - type: a primitive (bool, int, double, string, int64, any)
//   - ref: a named struct or enum
//   - array: the element type
//   - dictionary: key and value types
//   - struct / enum: an anonymous definition declared in place
//
// Document.Schema collects every structural problem as a diagnostic before
// returning an origin.Schema.
package schemafile
