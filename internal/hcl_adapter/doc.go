// Package hcl_adapter loads release configuration written in HCL and
// translates it into the format-agnostic config.Model.
//
// Attribute expressions are evaluated against a small function table, so a
// config can read CI variables with env("NAME") or build values with
// join, concat, upper and lower.
package hcl_adapter
