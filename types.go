package vdesc

import (
	descriptioncmd "github.com/goliatone/go-vdesc/internal/commands/description"
	"github.com/goliatone/go-vdesc/pkg/interfaces"
)

// Document model.
type (
	ParsedDocument = interfaces.ParsedDocument
	Section        = interfaces.Section
	SectionContent = interfaces.SectionContent
	ContentKind    = interfaces.ContentKind
	ListItem       = interfaces.ListItem
	InlineContent  = interfaces.InlineContent
	Run            = interfaces.Run
	RunKind        = interfaces.RunKind
)

const (
	RunPlain     = interfaces.RunPlain
	RunBold      = interfaces.RunBold
	ContentPlain = interfaces.ContentPlain
	ContentList  = interfaces.ContentList
)

// Collaborator contracts.
type (
	DescriptionParser = interfaces.DescriptionParser
	DocumentRenderer  = interfaces.DocumentRenderer
	DocumentSink      = interfaces.DocumentSink
	DocumentResult    = interfaces.DocumentResult
	Logger            = interfaces.Logger
	LoggerProvider    = interfaces.LoggerProvider
)

// Command messages.
type (
	ParseDescriptionCommand  = descriptioncmd.ParseDescriptionCommand
	RenderDescriptionCommand = descriptioncmd.RenderDescriptionCommand
)
