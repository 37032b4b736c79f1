package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Session Tools
	TemplateModeDescription = `Toggle template mode for the current session.

**When to use:** Before uploading a template or placing fields. Template mode is the state in which page clicks create field bindings instead of normal viewing interaction.

**Why it's useful:** Guarantees that templates and fields are only captured deliberately; with template mode off, uploads and clicks are ignored.

**Examples:**
• Start building a template: "Enable template mode, then load certificate.pdf"
• Lock the layout: "Disable template mode so further clicks don't add fields"

**Best practices:** Enable template mode first. A template loaded while the mode is off is not retained.`

	LoadTemplateDescription = `Load a PDF file as the session's stamping template.

**When to use:** After enabling template mode, to pick the document that every data row will be stamped onto.

**Why it's useful:** Retains the raw template bytes in the session so each generated document starts from a fresh, unmodified copy.

**Examples:**
• "Load /templates/certificate.pdf as the template"
• "Switch to the invoice layout: load invoice-blank.pdf"

**Best practices:** Only the first page receives stamped text; multi-page PDFs are accepted but pages 2+ pass through untouched. Loading a new template clears previously placed fields.`

	AddFieldDescription = `Bind a named field to a position on the template page.

**When to use:** For every spot on the template where a data column's value should appear.

**Why it's useful:** Converts a raw click (pixels inside the rendered page box) into a resolution-independent percentage position, so the binding holds no matter how the page was rendered.

**Examples:**
• "Place a 'name' field where the recipient's name goes"
• "Bind 'email' at click (210, 340) inside a 600x800 page box"

**Best practices:** The field name must match a column header in the data file; unmatched fields stamp blank text. Duplicate names are allowed and each placement is stamped independently. Clicks outside template mode are ignored.`

	ListFieldsDescription = `List the field bindings placed on the current template.

**When to use:** To review the layout before loading data or generating, or to confirm a click registered.

**Why it's useful:** Shows each field's name and normalized position in placement order, which is also the stamping order.

**Examples:**
• "Show me the fields placed so far"
• "Verify the 'name' field sits near the top-left (low x/y percentages)"`

	LoadRowsDescription = `Load a delimited data file (CSV with a header row) as the batch's rows.

**When to use:** After the template and fields are set, to supply one record per output document.

**Why it's useful:** Each row is keyed by column header and matched to field names at stamp time; row order determines generation order.

**Examples:**
• "Load recipients.csv, one certificate per row"
• "Use orders.csv; the first column drives the output file names"

**Best practices:** The first column's value names each output file (generated_<value>.pdf). Missing columns stamp as blank text, not errors.`

	GenerateBatchDescription = `Generate one stamped PDF per data row and write them to the output directory.

**When to use:** When the template, at least one field, and at least one data row are all loaded.

**Why it's useful:** Every row gets a fresh copy of the template with its values drawn at the bound positions, so values never leak between rows.

**Examples:**
• "Generate the batch" → generated_Alice.pdf, generated_Bob.pdf, ...
• Rerun after fixing a field position to overwrite the previous outputs

**Best practices:** The call fails up front if the template, fields or rows are missing, and refuses to start while another batch is running. A failure mid-batch aborts the run; documents already written remain on disk.`

	StamperInfoDescription = `Get session state, readiness and server configuration.

**When to use:** At any point to see what has been loaded and whether generation is possible.

**Why it's useful:** Reports template mode, the retained template, field and row counts, the generate-readiness of the session, and the configured directories and font.

**Examples:**
• "Why is generate failing?" → shows which of template/fields/rows is missing
• "Where do generated files go?" → shows the output directory`

	// File Tools
	ValidateTemplateDescription = `Verify a PDF file is usable as a stamping template before loading it.

**When to use:** Before pdf_load_template, especially for files of unknown origin.

**Why it's useful:** Prevents load errors by checking existence, extension, size limits and PDF structure early.

**Examples:**
• "Validate /templates/certificate.pdf before using it"
• Batch hygiene: "Check every PDF in the templates directory is readable"`

	TemplateInfoDescription = `Get a template's page count, first-page size and a short text preview.

**When to use:** Before placing fields, to learn the page geometry the percentages will map onto.

**Why it's useful:** Field positions are stamped against the first page's size in points; knowing the dimensions helps reason about where a percentage lands. Flags multi-page templates, where only page 1 is stamped.

**Examples:**
• "How big is certificate.pdf's page?" → 595 x 842 points (A4)
• "Preview the template text to confirm it's the right layout"`
)
