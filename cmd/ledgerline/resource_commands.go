package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/ledgerline/ledgerline-go/api"
)

func resourceCommands() []command {
	return []command{
		{
			name:          "customers",
			usage:         "list|get|create|update|delete customers",
			requiredPerms: []string{"customers:read"},
			run:           runCustomers,
		},
		{
			name:          "products",
			usage:         "list|get|create|update|delete products",
			requiredPerms: []string{"products:read"},
			run:           runProducts,
		},
		{
			name:          "invoices",
			usage:         "list|get|create|update|delete|pay invoices",
			requiredPerms: []string{"invoices:read"},
			run:           runInvoices,
		},
		{
			name:  "business",
			usage: "get|update the business profile",
			run:   runBusiness,
		},
		{
			name:  "settings",
			usage: "get|update business settings",
			run:   runSettings,
		},
		{
			name:  "dashboard",
			usage: "stats|activity|chart dashboard views",
			run:   runDashboard,
		},
		{
			name:          "reports",
			usage:         "sales|customers|products reports",
			requiredPerms: []string{"reports:read"},
			run:           runReports,
		},
		{
			name:          "analytics",
			usage:         "financial|vat|campaigns|admin analytics",
			requiredPerms: []string{"reports:read"},
			run:           runAnalytics,
		},
	}
}

// listParams turns -page/-limit/-search flags into query values the backend
// understands. Empty values are omitted entirely.
func listParams(page, limit int, search string) url.Values {
	params := url.Values{}
	if page > 0 {
		params.Set("page", fmt.Sprint(page))
	}
	if limit > 0 {
		params.Set("limit", fmt.Sprint(limit))
	}
	if search != "" {
		params.Set("search", search)
	}
	return params
}

func subcommand(args []string, usage string) (string, []string, error) {
	if len(args) == 0 {
		return "", nil, fmt.Errorf("usage: %s", usage)
	}
	return args[0], args[1:], nil
}

// readDocument loads a JSON document from a file path, or stdin for "-".
func readDocument(path string, out any) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func runCustomers(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline customers list|get|create|update|delete")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("customers "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	id := fs.String("id", "", "customer id")
	name := fs.String("name", "", "customer name")
	email := fs.String("email", "", "customer email")
	phone := fs.String("phone", "", "customer phone")
	company := fs.String("company", "", "customer company")
	address := fs.String("address", "", "customer address")
	notes := fs.String("notes", "", "free-form notes")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	doc := api.Customer{
		Name: *name, Email: *email, Phone: *phone,
		Company: *company, Address: *address, Notes: *notes,
	}

	switch verb {
	case "list":
		customers, err := a.client.Customers.List(ctx, listParams(*page, *limit, *search))
		if err != nil {
			return transient(err, "Failed to load customers")
		}
		return a.render(*output, customers)
	case "get":
		customer, err := a.client.Customers.Get(ctx, *id)
		if err != nil {
			return transient(err, "Failed to load customer")
		}
		return a.render(*output, customer)
	case "create":
		if err := a.ensurePermissions([]string{"customers:write"}, "/customers"); err != nil {
			return err
		}
		customer, err := a.client.Customers.Create(ctx, doc)
		if err != nil {
			return transient(err, "Failed to create customer")
		}
		return a.render(*output, customer)
	case "update":
		if err := a.ensurePermissions([]string{"customers:write"}, "/customers"); err != nil {
			return err
		}
		customer, err := a.client.Customers.Update(ctx, *id, doc)
		if err != nil {
			return transient(err, "Failed to update customer")
		}
		return a.render(*output, customer)
	case "delete":
		if err := a.ensurePermissions([]string{"customers:write"}, "/customers"); err != nil {
			return err
		}
		if err := a.client.Customers.Delete(ctx, *id); err != nil {
			return transient(err, "Failed to delete customer")
		}
		fmt.Println("Customer deleted")
		return nil
	default:
		return fmt.Errorf("unknown customers verb %q", verb)
	}
}

func runProducts(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline products list|get|create|update|delete")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("products "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	id := fs.String("id", "", "product id")
	name := fs.String("name", "", "product name")
	sku := fs.String("sku", "", "stock keeping unit")
	description := fs.String("description", "", "product description")
	price := fs.Float64("price", 0, "unit price")
	taxRate := fs.Float64("tax-rate", 0, "tax rate percentage")
	stock := fs.Int("stock", 0, "stock on hand")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	doc := api.Product{
		Name: *name, SKU: *sku, Description: *description,
		Price: *price, TaxRate: *taxRate, Stock: *stock,
	}

	switch verb {
	case "list":
		products, err := a.client.Products.List(ctx, listParams(*page, *limit, *search))
		if err != nil {
			return transient(err, "Failed to load products")
		}
		return a.render(*output, products)
	case "get":
		product, err := a.client.Products.Get(ctx, *id)
		if err != nil {
			return transient(err, "Failed to load product")
		}
		return a.render(*output, product)
	case "create":
		if err := a.ensurePermissions([]string{"products:write"}, "/products"); err != nil {
			return err
		}
		product, err := a.client.Products.Create(ctx, doc)
		if err != nil {
			return transient(err, "Failed to create product")
		}
		return a.render(*output, product)
	case "update":
		if err := a.ensurePermissions([]string{"products:write"}, "/products"); err != nil {
			return err
		}
		product, err := a.client.Products.Update(ctx, *id, doc)
		if err != nil {
			return transient(err, "Failed to update product")
		}
		return a.render(*output, product)
	case "delete":
		if err := a.ensurePermissions([]string{"products:write"}, "/products"); err != nil {
			return err
		}
		if err := a.client.Products.Delete(ctx, *id); err != nil {
			return transient(err, "Failed to delete product")
		}
		fmt.Println("Product deleted")
		return nil
	default:
		return fmt.Errorf("unknown products verb %q", verb)
	}
}

func runInvoices(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline invoices list|get|create|update|delete|pay")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("invoices "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	id := fs.String("id", "", "invoice id")
	file := fs.String("file", "", "JSON invoice document, '-' for stdin")
	amount := fs.Float64("amount", 0, "payment amount")
	method := fs.String("method", "", "payment method")
	reference := fs.String("reference", "", "payment reference")
	page := fs.Int("page", 0, "page number")
	limit := fs.Int("limit", 0, "page size")
	search := fs.String("search", "", "search term")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "list":
		invoices, err := a.client.Invoices.List(ctx, listParams(*page, *limit, *search))
		if err != nil {
			return transient(err, "Failed to load invoices")
		}
		return a.render(*output, invoices)
	case "get":
		invoice, err := a.client.Invoices.Get(ctx, *id)
		if err != nil {
			return transient(err, "Failed to load invoice")
		}
		return a.render(*output, invoice)
	case "create", "update":
		if err := a.ensurePermissions([]string{"invoices:write"}, "/invoices"); err != nil {
			return err
		}
		if *file == "" {
			return fmt.Errorf("-file is required for invoices %s", verb)
		}
		var doc api.Invoice
		if err := readDocument(*file, &doc); err != nil {
			return err
		}
		var invoice *api.Invoice
		if verb == "create" {
			invoice, err = a.client.Invoices.Create(ctx, doc)
		} else {
			invoice, err = a.client.Invoices.Update(ctx, *id, doc)
		}
		if err != nil {
			return transient(err, "Failed to save invoice")
		}
		return a.render(*output, invoice)
	case "delete":
		if err := a.ensurePermissions([]string{"invoices:write"}, "/invoices"); err != nil {
			return err
		}
		if err := a.client.Invoices.Delete(ctx, *id); err != nil {
			return transient(err, "Failed to delete invoice")
		}
		fmt.Println("Invoice deleted")
		return nil
	case "pay":
		if err := a.ensurePermissions([]string{"invoices:write"}, "/invoices"); err != nil {
			return err
		}
		invoice, err := a.client.Invoices.RecordPayment(ctx, *id, api.Payment{
			Amount: *amount, Method: *method, Reference: *reference,
		})
		if err != nil {
			return transient(err, "Failed to record payment")
		}
		return a.render(*output, invoice)
	default:
		return fmt.Errorf("unknown invoices verb %q", verb)
	}
}

func runBusiness(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline business get|update")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("business "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	name := fs.String("name", "", "business name")
	email := fs.String("email", "", "business email")
	phone := fs.String("phone", "", "business phone")
	address := fs.String("address", "", "business address")
	taxNumber := fs.String("tax-number", "", "tax registration number")
	currency := fs.String("currency", "", "default currency code")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "get":
		business, err := a.client.Business.Get(ctx)
		if err != nil {
			return transient(err, "Failed to load business profile")
		}
		return a.render(*output, business)
	case "update":
		if err := a.ensurePermissions([]string{"business:write"}, "/business"); err != nil {
			return err
		}
		business, err := a.client.Business.Update(ctx, api.Business{
			Name: *name, Email: *email, Phone: *phone,
			Address: *address, TaxNumber: *taxNumber, Currency: *currency,
		})
		if err != nil {
			return transient(err, "Failed to update business profile")
		}
		return a.render(*output, business)
	default:
		return fmt.Errorf("unknown business verb %q", verb)
	}
}

func runSettings(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline settings get|update")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("settings "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	invoicePrefix := fs.String("invoice-prefix", "", "invoice number prefix")
	taxRate := fs.Float64("tax-rate", 0, "default tax rate")
	currency := fs.String("currency", "", "currency code")
	paymentTerms := fs.Int("payment-terms", 0, "payment terms in days")
	emailNotifications := fs.Bool("email-notifications", false, "enable email notifications")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "get":
		settings, err := a.client.Business.GetSettings(ctx)
		if err != nil {
			return transient(err, "Failed to load settings")
		}
		return a.render(*output, settings)
	case "update":
		if err := a.ensurePermissions([]string{"settings:write"}, "/settings"); err != nil {
			return err
		}
		settings, err := a.client.Business.UpdateSettings(ctx, api.Settings{
			InvoicePrefix:      *invoicePrefix,
			DefaultTaxRate:     *taxRate,
			Currency:           *currency,
			PaymentTermsDays:   *paymentTerms,
			EmailNotifications: *emailNotifications,
		})
		if err != nil {
			return transient(err, "Failed to update settings")
		}
		return a.render(*output, settings)
	default:
		return fmt.Errorf("unknown settings verb %q", verb)
	}
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline dashboard stats|activity|chart")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("dashboard "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	chartType := fs.String("type", "revenue", "chart type")
	period := fs.String("period", "30d", "chart period")
	path := fs.String("path", "", "optional value path into the chart payload")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	switch verb {
	case "stats":
		stats, err := a.client.Dashboard.GetStats(ctx)
		if err != nil {
			return transient(err, "Failed to load dashboard stats")
		}
		return a.render(*output, stats)
	case "activity":
		activity, err := a.client.Dashboard.GetRecentActivity(ctx)
		if err != nil {
			return transient(err, "Failed to load recent activity")
		}
		return a.render(*output, activity)
	case "chart":
		chart, err := a.client.Dashboard.GetChartData(ctx, *chartType, *period)
		if err != nil {
			return transient(err, "Failed to load chart data")
		}
		if *path != "" {
			fmt.Println(chart.Lookup(*path).String())
			return nil
		}
		return a.render(*output, json.RawMessage(chart.Raw))
	default:
		return fmt.Errorf("unknown dashboard verb %q", verb)
	}
}

func runReports(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline reports sales|customers|products")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("reports "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	from := fs.String("from", "", "range start (YYYY-MM-DD)")
	to := fs.String("to", "", "range end (YYYY-MM-DD)")
	if err := fs.Parse(rest); err != nil {
		return err
	}

	params := url.Values{}
	if *from != "" {
		params.Set("from", *from)
	}
	if *to != "" {
		params.Set("to", *to)
	}

	var report *api.Report
	switch verb {
	case "sales":
		report, err = a.client.Reports.Sales(ctx, params)
	case "customers":
		report, err = a.client.Reports.Customers(ctx, params)
	case "products":
		report, err = a.client.Reports.Products(ctx, params)
	default:
		return fmt.Errorf("unknown reports verb %q", verb)
	}
	if err != nil {
		return transient(err, "Failed to load report")
	}
	return a.render(*output, json.RawMessage(report.Raw))
}

func runAnalytics(ctx context.Context, a *app, args []string) error {
	verb, rest, err := subcommand(args, "ledgerline analytics financial|vat|campaigns|admin")
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("analytics "+verb, flag.ContinueOnError)
	output := a.outputFlag(fs)
	if err := fs.Parse(rest); err != nil {
		return err
	}

	var report *api.Report
	switch verb {
	case "financial":
		report, err = a.client.Analytics.FinancialAnalytics(ctx)
	case "vat":
		report, err = a.client.Analytics.VATReports(ctx)
	case "campaigns":
		report, err = a.client.Analytics.Campaigns(ctx)
	case "admin":
		report, err = a.client.Analytics.SystemStats(ctx)
	default:
		return fmt.Errorf("unknown analytics verb %q", verb)
	}
	if err != nil {
		return transient(err, "Failed to load analytics")
	}
	return a.render(*output, json.RawMessage(report.Raw))
}

// transient shapes an API failure into the message a page controller would
// show: the envelope's message for business errors, a generic fallback for
// everything else.
func transient(err error, fallback string) error {
	return fmt.Errorf("%s", api.Message(err, fallback))
}
