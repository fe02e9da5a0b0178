// Package model defines the localized form model consumed by renderers and PDF
// builders. Builders reside in internal/model but return the types defined
// here. Every field carries its submission name (<section>_<field>) so the web
// form, required-field validation and the PDF builders agree on value keys.
// Values produced by Normalize add the city/date entries and the convenience
// aliases (vg_*, b_*, person_*) the document builders read.
package model
