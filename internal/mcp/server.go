package mcp

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/docforge/mcp-pdf-stamper/internal/config"
	"github.com/docforge/mcp-pdf-stamper/internal/descriptions"
	"github.com/docforge/mcp-pdf-stamper/internal/session"
	"github.com/docforge/mcp-pdf-stamper/internal/stamp"
)

// Server represents the MCP server instance
type Server struct {
	config       *config.Config
	stampService *stamp.Service
	session      *session.Session
	mcpServer    *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, stampService *stamp.Service) (*Server, error) {
	if stampService == nil {
		return nil, fmt.Errorf("stampService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:       cfg,
		stampService: stampService,
		session:      session.New(),
		mcpServer:    mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	templateModeTool := mcp.NewTool(
		"pdf_template_mode",
		mcp.WithDescription(descriptions.TemplateModeDescription),
		mcp.WithBoolean("enabled",
			mcp.Required(),
			mcp.Description("Whether template mode should be active"),
		),
	)
	s.mcpServer.AddTool(templateModeTool, s.handleTemplateMode)

	loadTemplateTool := mcp.NewTool(
		"pdf_load_template",
		mcp.WithDescription(descriptions.LoadTemplateDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the template PDF file"),
		),
	)
	s.mcpServer.AddTool(loadTemplateTool, s.handleLoadTemplate)

	addFieldTool := mcp.NewTool(
		"pdf_add_field",
		mcp.WithDescription(descriptions.AddFieldDescription),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Field name; must match a data column header to receive values"),
		),
		mcp.WithNumber("click_x",
			mcp.Required(),
			mcp.Description("Click X position in pixels"),
		),
		mcp.WithNumber("click_y",
			mcp.Required(),
			mcp.Description("Click Y position in pixels"),
		),
		mcp.WithNumber("box_width",
			mcp.Required(),
			mcp.Description("Rendered page width in pixels"),
		),
		mcp.WithNumber("box_height",
			mcp.Required(),
			mcp.Description("Rendered page height in pixels"),
		),
		mcp.WithNumber("box_left",
			mcp.Description("Rendered page left edge in pixels (default 0)"),
		),
		mcp.WithNumber("box_top",
			mcp.Description("Rendered page top edge in pixels (default 0)"),
		),
	)
	s.mcpServer.AddTool(addFieldTool, s.handleAddField)

	listFieldsTool := mcp.NewTool(
		"pdf_list_fields",
		mcp.WithDescription(descriptions.ListFieldsDescription),
	)
	s.mcpServer.AddTool(listFieldsTool, s.handleListFields)

	loadRowsTool := mcp.NewTool(
		"pdf_load_rows",
		mcp.WithDescription(descriptions.LoadRowsDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the delimited data file"),
		),
	)
	s.mcpServer.AddTool(loadRowsTool, s.handleLoadRows)

	generateBatchTool := mcp.NewTool(
		"pdf_generate_batch",
		mcp.WithDescription(descriptions.GenerateBatchDescription),
	)
	s.mcpServer.AddTool(generateBatchTool, s.handleGenerateBatch)

	validateTemplateTool := mcp.NewTool(
		"pdf_validate_template",
		mcp.WithDescription(descriptions.ValidateTemplateDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(validateTemplateTool, s.handleValidateTemplate)

	templateInfoTool := mcp.NewTool(
		"pdf_template_info",
		mcp.WithDescription(descriptions.TemplateInfoDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(templateInfoTool, s.handleTemplateInfo)

	stamperInfoTool := mcp.NewTool(
		"pdf_stamper_info",
		mcp.WithDescription(descriptions.StamperInfoDescription),
	)
	s.mcpServer.AddTool(stamperInfoTool, s.handleStamperInfo)
}

// Handler functions

func (s *Server) handleTemplateMode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	enabled, ok := args["enabled"].(bool)
	if !ok {
		return mcp.NewToolResultError("enabled must be a boolean"), nil
	}

	s.session.SetTemplateMode(enabled)

	if enabled {
		return mcp.NewToolResultText("Template mode enabled. Load a template and click to place fields."), nil
	}
	return mcp.NewToolResultText("Template mode disabled. Clicks and template uploads are now ignored."), nil
}

func (s *Server) handleLoadTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, err := s.stampService.LoadTemplateFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	name := filepath.Base(path)
	if !s.session.LoadTemplate(name, data) {
		return mcp.NewToolResultText(
			"Template mode is off, so the template was not retained. " +
				"Enable template mode with pdf_template_mode and load again."), nil
	}

	responseText := fmt.Sprintf("Loaded template: %s (%d bytes)\n", name, len(data))
	if info, err := s.stampService.TemplateInfoBytes(name, data); err == nil {
		responseText += fmt.Sprintf("Pages: %d\n", info.Pages)
		responseText += fmt.Sprintf("First page: %.2f x %.2f points\n", info.PageWidth, info.PageHeight)
		if !info.SinglePage {
			responseText += "Note: only the first page will receive stamped fields.\n"
		}
	}
	responseText += "Previously placed fields were cleared."

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleAddField(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()

	clickX, err := requireNumber(args, "click_x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	clickY, err := requireNumber(args, "click_y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	boxWidth, err := requireNumber(args, "box_width")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	boxHeight, err := requireNumber(args, "box_height")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	box := stamp.PageBox{
		Left:   optionalNumber(args, "box_left"),
		Top:    optionalNumber(args, "box_top"),
		Width:  boxWidth,
		Height: boxHeight,
	}
	click := stamp.ClickPosition{X: clickX, Y: clickY}

	field, err := s.session.AddField(click, box, name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if field == nil {
		if !s.session.TemplateMode() {
			return mcp.NewToolResultText("Template mode is off; the click was ignored."), nil
		}
		return mcp.NewToolResultText("Field name is empty; nothing was added."), nil
	}

	responseText := fmt.Sprintf("Added field %q at %.1f%%, %.1f%% (field #%d)",
		field.FieldName, field.X, field.Y, len(s.session.Fields()))
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleListFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fields := s.session.Fields()
	return mcp.NewToolResultText(s.formatFieldList(fields)), nil
}

func (s *Server) handleLoadRows(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	table, err := s.stampService.LoadRowsFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.session.LoadRows(table)

	responseText := fmt.Sprintf("Loaded %d row(s) from %s\n", table.Len(), filepath.Base(path))
	responseText += fmt.Sprintf("Columns: %v\n", table.Headers)
	if h := table.FirstHeader(); h != "" {
		responseText += fmt.Sprintf("Output files will be named after the %q column.", h)
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleGenerateBatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var written []string

	err := s.session.Generate(s.stampService.Stamper(), func(doc stamp.GeneratedDocument) error {
		path, err := s.stampService.WriteDocument(doc)
		if err != nil {
			return err
		}
		written = append(written, path)
		return nil
	})
	if err != nil {
		log.Printf("Batch generation failed after %d document(s): %v", len(written), err)
		return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
	}

	responseText := fmt.Sprintf("Generated %d document(s) in %s\n", len(written), s.stampService.OutputDirectory())
	for i, path := range written {
		responseText += fmt.Sprintf("%d. %s\n", i+1, filepath.Base(path))
	}
	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleValidateTemplate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := stamp.TemplateValidateFileRequest{Path: path}
	result, err := s.stampService.TemplateValidateFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.Valid {
		responseText = fmt.Sprintf("Template %s is valid and usable", result.Path)
	} else {
		responseText = fmt.Sprintf("Template validation failed for %s: %s", result.Path, result.Message)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleTemplateInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	req := stamp.TemplateInfoFileRequest{Path: path}
	result, err := s.stampService.TemplateInfoFile(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatTemplateInfoResult(result)), nil
}

func (s *Server) handleStamperInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := s.session.Snapshot()
	return mcp.NewToolResultText(s.formatStamperInfo(state)), nil
}

// Argument helpers

func requireNumber(args map[string]any, key string) (float64, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s must be a number", key)
	}
	return v, nil
}

func optionalNumber(args map[string]any, key string) float64 {
	v, _ := args[key].(float64)
	return v
}

// Formatting methods

func (s *Server) formatFieldList(fields []stamp.TemplateField) string {
	if len(fields) == 0 {
		return "No fields placed. Enable template mode and use pdf_add_field."
	}

	text := fmt.Sprintf("%d field(s) placed:\n", len(fields))
	for i, field := range fields {
		text += fmt.Sprintf("%d. %q at x=%.1f%%, y=%.1f%%\n", i+1, field.FieldName, field.X, field.Y)
	}
	return text
}

func (s *Server) formatTemplateInfoResult(result *stamp.TemplateInfoFileResult) string {
	text := "Template Information\n"
	text += fmt.Sprintf("File: %s\n", result.Path)
	text += fmt.Sprintf("Size: %d bytes\n", result.Size)
	text += fmt.Sprintf("Pages: %d\n", result.Pages)
	text += fmt.Sprintf("First page: %.2f x %.2f points\n", result.PageWidth, result.PageHeight)
	if !result.SinglePage {
		text += "Note: only the first page receives stamped fields.\n"
	}
	if result.Preview != "" {
		text += "\nText preview:\n" + result.Preview + "\n"
	}
	return text
}

func (s *Server) formatStamperInfo(state session.State) string {
	text := fmt.Sprintf("%s v%s - Session State\n", s.config.ServerName, s.config.Version)
	text += fmt.Sprintf("Template mode: %t\n", state.TemplateMode)
	if state.TemplateName != "" {
		text += fmt.Sprintf("Template: %s (%d bytes)\n", state.TemplateName, state.TemplateSize)
	} else {
		text += "Template: none\n"
	}
	text += fmt.Sprintf("Fields placed: %d\n", state.FieldCount)
	text += fmt.Sprintf("Rows loaded: %d\n", state.RowCount)
	if state.Generating {
		text += "A batch is currently generating.\n"
	}

	ready := state.TemplateSize > 0 && state.FieldCount > 0 && state.RowCount > 0
	text += fmt.Sprintf("Ready to generate: %t\n", ready)
	if !ready {
		if state.TemplateSize == 0 {
			text += "  - load a template (pdf_template_mode, then pdf_load_template)\n"
		}
		if state.FieldCount == 0 {
			text += "  - place at least one field (pdf_add_field)\n"
		}
		if state.RowCount == 0 {
			text += "  - load data rows (pdf_load_rows)\n"
		}
	}

	text += fmt.Sprintf("\nTemplate directory: %s\n", s.stampService.TemplateDirectory())
	text += fmt.Sprintf("Output directory: %s\n", s.stampService.OutputDirectory())
	text += fmt.Sprintf("Max file size: %d MB\n", s.stampService.GetMaxFileSize()/(1024*1024))
	text += fmt.Sprintf("Stamp font: %s %dpt\n", s.config.FontName, s.config.FontSize)

	return text
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting PDF stamper MCP server in stdio mode")
		log.Printf("Template directory: %s", s.config.TemplateDirectory)
		log.Printf("Output directory: %s", s.config.OutputDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server in HTTP server mode
func (s *Server) runServerMode(ctx context.Context) error {
	// The mark3labs library handles transports differently; stdio is the
	// only transport wired up for now.
	log.Printf("Server mode not yet implemented with mark3labs/mcp-go")
	log.Printf("Falling back to stdio mode")
	return s.runStdioMode(ctx)
}
