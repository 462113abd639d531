package models

// FolderTemplate is a predefined folder skeleton: one top-level folder and
// an optional list of child names. Templates are applied idempotently -
// folders that already exist are reused, never duplicated.
type FolderTemplate struct {
	Name     string   `yaml:"name" json:"name"`
	Children []string `yaml:"children,omitempty" json:"children,omitempty"`
}

// TemplateFile is the on-disk shape of a template bundle.
type TemplateFile struct {
	Templates []FolderTemplate `yaml:"templates" json:"templates"`
}
