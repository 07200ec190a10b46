package assets

import (
	"embed"
	"text/template"
)

//go:embed templates/*
var templatesFS embed.FS

var Templates = template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))

const (
	DeployCommandTemplate = "deploy_command.tmpl"
	QsysGenerateTemplate  = "qsys_generate.tmpl"
)

// DeployCommandParams is one block of the ip-deploy command log.
type DeployCommandParams struct {
	Name string
	Args []string
}

type QsysGenerateParams struct {
	IPFile     string
	OutputDir  string
	SearchPath string
}
