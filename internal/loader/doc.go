// Package loader is the input-loading collaborator for the engine: it
// discovers HCL answer files, validates each raw answer against the form
// catalog's input declarations, and assembles a ready-to-evaluate run.
//
// An answer file contains one block per form instance:
//
//	form "1040" {
//	  answers = {
//	    first_name    = "Ada"
//	    filing_status = "single"
//	  }
//	}
//
//	form "1099-int" {
//	  index   = 0
//	  answers = {
//	    payer = "First Bank"
//	    box_1 = 312.50
//	  }
//	}
//
// Repeatable forms carry an explicit zero-based index; singleton forms
// must not.
package loader
