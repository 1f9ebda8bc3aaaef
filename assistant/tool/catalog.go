package tool

import (
	"github.com/openai/openai-go"
)

const (
	ToolCreateSupplier    = "create_supplier"
	ToolCreateAppointment = "create_appointment"
	ToolCreateProduct     = "create_product"
	ToolCreateSale        = "create_sale"
)

// PaymentMethods is the closed set of accepted payment methods for a sale.
var PaymentMethods = []string{"cash", "card", "transfer", "credit", "voucher", "gift_card"}

// Catalog returns the static tool definitions sent with every dispatch. Tool
// invocation is reserved for state-changing requests; descriptive questions
// are answered from the system prompt without any tool.
func Catalog() []openai.ChatCompletionToolParam {
	return []openai.ChatCompletionToolParam{
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolCreateSupplier,
				Description: openai.String("Register a new supplier for the business. Use when the user asks to create, add, or register a supplier/provider (proveedor)."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Supplier company or contact name.",
						},
						"email": map[string]any{
							"type":        "string",
							"description": "Contact email, if the user gave one.",
						},
						"phone": map[string]any{
							"type":        "string",
							"description": "Contact phone, if the user gave one.",
						},
						"address": map[string]any{
							"type":        "string",
							"description": "Street address, if the user gave one.",
						},
					},
					"required":             []string{"name"},
					"additionalProperties": false,
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolCreateAppointment,
				Description: openai.String("Schedule an appointment (cita) with a customer. All fields are required; ask the user before calling if any is missing."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"customerName": map[string]any{
							"type":        "string",
							"description": "Customer full name.",
						},
						"customerPhone": map[string]any{
							"type":        "string",
							"description": "Customer phone number.",
						},
						"subject": map[string]any{
							"type":        "string",
							"description": "What the appointment is about.",
						},
						"appointmentDate": map[string]any{
							"type":        "string",
							"description": "Date in YYYY-MM-DD format.",
						},
						"appointmentTime": map[string]any{
							"type":        "string",
							"description": "Time in 24-hour HH:MM format.",
						},
					},
					"required":             []string{"customerName", "customerPhone", "subject", "appointmentDate", "appointmentTime"},
					"additionalProperties": false,
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolCreateProduct,
				Description: openai.String("Add a new product to the catalog. Only name and price are required; the SKU is generated automatically when omitted."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"name": map[string]any{
							"type":        "string",
							"description": "Product name.",
						},
						"price": map[string]any{
							"type":        "number",
							"description": "Selling price per unit.",
						},
						"cost": map[string]any{
							"type":        "number",
							"description": "Unit cost, if known. Enables margin reporting.",
						},
						"sku": map[string]any{
							"type":        "string",
							"description": "Stock keeping unit. Leave empty to auto-generate.",
						},
						"category": map[string]any{
							"type":        "string",
							"description": "Existing category name. Matched case-insensitively; never creates a category.",
						},
						"stock": map[string]any{
							"type":        "integer",
							"description": "Initial stock. Defaults to 0.",
						},
						"minStock": map[string]any{
							"type":        "integer",
							"description": "Low-stock alert threshold. Defaults to 5.",
						},
						"unit": map[string]any{
							"type":        "string",
							"description": "Unit of measure, e.g. pieza, kg, litro.",
						},
					},
					"required":             []string{"name", "price"},
					"additionalProperties": false,
				},
			},
		},
		{
			Function: openai.FunctionDefinitionParam{
				Name:        ToolCreateSale,
				Description: openai.String("Ring up a sale. Line prices come from the current catalog; payments must cover the total or the sale is rejected."),
				Parameters: openai.FunctionParameters{
					"type": "object",
					"properties": map[string]any{
						"items": map[string]any{
							"type":        "array",
							"description": "Products being sold.",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"productName": map[string]any{
										"type":        "string",
										"description": "Catalog product name.",
									},
									"quantity": map[string]any{
										"type":        "integer",
										"description": "Units sold. Must be positive.",
									},
								},
								"required":             []string{"productName", "quantity"},
								"additionalProperties": false,
							},
						},
						"payments": map[string]any{
							"type":        "array",
							"description": "How the customer pays. At least one entry.",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"method": map[string]any{
										"type":        "string",
										"enum":        PaymentMethods,
										"description": "Payment method.",
									},
									"amount": map[string]any{
										"type":        "number",
										"description": "Amount paid with this method.",
									},
								},
								"required":             []string{"method", "amount"},
								"additionalProperties": false,
							},
						},
						"ticket": map[string]any{
							"type":        "string",
							"description": "Optional ticket label.",
						},
						"cashReceived": map[string]any{
							"type":        "number",
							"description": "Cash handed over, when the user wants change calculated.",
						},
					},
					"required":             []string{"items", "payments"},
					"additionalProperties": false,
				},
			},
		},
	}
}
