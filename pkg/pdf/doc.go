// Package pdf draws form documents with go-pdf/fpdf. Canvas wraps the fpdf
// instance with the primitives the document builders share (titles, bordered
// label/value tables, checkbox rows, boxed text areas and the signature
// block). Builders are registered by name; the generic and layout builders
// cover forms that do not ship a dedicated one.
//
// All measurements are PDF points on an A4 page. Text uses the core Helvetica
// font and is translated to cp1252.
package pdf
