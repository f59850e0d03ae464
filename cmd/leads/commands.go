package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jordanlanch/leadmanager/pkg/dashboard"
	"github.com/jordanlanch/leadmanager/pkg/domain"
	"github.com/jordanlanch/leadmanager/pkg/export"
	"github.com/jordanlanch/leadmanager/pkg/format"
	"github.com/jordanlanch/leadmanager/pkg/leaddetail"
	"github.com/jordanlanch/leadmanager/pkg/leadlist"
	"github.com/jordanlanch/leadmanager/pkg/models"
	"github.com/jordanlanch/leadmanager/pkg/session"
	"github.com/jordanlanch/leadmanager/pkg/tui"
	"github.com/spf13/pflag"
)

// listFlags are the query flags shared by list and export
type listFlags struct {
	search string
	status string
	source string
	page   int
	limit  int
}

func (f *listFlags) register(fs *pflag.FlagSet, pageSize int) {
	fs.StringVarP(&f.search, "search", "s", "", "match name, email or company")
	fs.StringVar(&f.status, "status", "", "pipeline status, e.g. Qualified or closed-won")
	fs.StringVar(&f.source, "source", "", "lead source, e.g. Referral or social-media")
	fs.IntVarP(&f.page, "page", "p", 1, "page number, starting at 1")
	fs.IntVarP(&f.limit, "limit", "l", pageSize, "leads per page (5, 10, 25 or 50)")
}

// controller builds a list controller from the client configuration
func (a *app) controller(notifier leadlist.Notifier) *leadlist.Controller {
	opts := []leadlist.Option{
		leadlist.WithNotifier(notifier),
		leadlist.WithLogger(a.log),
		leadlist.WithMetrics(a.metrics),
	}
	if a.cfg.LatestOnly {
		opts = append(opts, leadlist.WithLatestOnly())
	}
	if a.cfg.SearchResetsPage {
		opts = append(opts, leadlist.WithSearchResetsPage())
	}
	return leadlist.New(a.client, opts...)
}

// printNotifier writes notifications to the command output
func (a *app) printNotifier() leadlist.Notifier {
	return leadlist.NotifierFunc(func(n leadlist.Notification) {
		fmt.Fprintf(a.out, "[%s] %s\n", n.Level, n.Message)
	})
}

// apply moves the controller to the query described by the flags. Filters
// reset the page, so the page is set last.
func (f *listFlags) apply(c *leadlist.Controller) error {
	if _, err := c.SetPageSize(f.limit); err != nil {
		return err
	}

	c.SetSearchText(f.search)
	c.SubmitSearch()

	status, err := models.ParseLeadStatus(f.status)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	if _, err := c.SetStatusFilter(status); err != nil {
		return err
	}

	source, err := models.ParseLeadSource(f.source)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}
	if _, err := c.SetSourceFilter(source); err != nil {
		return err
	}

	_, err = c.SetPage(f.page - 1)
	return err
}

func runTUI(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("tui")
	var email, password string
	fs.StringVar(&email, "email", "", "sign in with this email when there is no session")
	fs.StringVar(&password, "password", "", "password for --email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var user *models.User
	if a.cfg.Token == "" {
		sess, err := a.store.Load(ctx)
		switch {
		case err == nil:
			user = &sess.User
		case email != "":
			resp, err := a.login(ctx, email, password)
			if err != nil {
				return err
			}
			u := resp.User()
			user = &u
		default:
			return errors.New("not signed in: run 'leads login' or pass --email")
		}
	}

	notices := tui.NewNotices()
	controller := a.controller(notices)
	if a.cfg.PageSize != 0 {
		if _, err := controller.SetPageSize(a.cfg.PageSize); err != nil {
			return err
		}
	}

	exporter, err := a.exporter(ctx)
	if err != nil {
		return err
	}

	model := tui.NewModel(ctx, tui.Deps{
		Controller: controller,
		Leads:      a.client,
		Analytics:  a.client,
		Exporter:   exporter,
		Notices:    notices,
		Log:        a.log,
		User:       user,
	})

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (a *app) readPassword(password string) (string, error) {
	if password != "" {
		return password, nil
	}
	fmt.Fprint(a.out, "Password: ")
	line, err := bufio.NewReader(a.stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (a *app) login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	password, err := a.readPassword(password)
	if err != nil {
		return nil, err
	}
	resp, err := a.client.Login(ctx, models.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := a.store.Save(ctx, session.Session{Token: resp.Token, User: resp.User()}); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	a.log.Info("signed in", "email", resp.Email)
	return resp, nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("login")
	var email, password string
	fs.StringVarP(&email, "email", "e", "", "account email")
	fs.StringVar(&password, "password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if email == "" {
		return domain.NewValidationError("--email is required")
	}

	resp, err := a.login(ctx, email, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", resp.Name, resp.Email)
	return nil
}

func runRegister(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("register")
	var name, email, password string
	fs.StringVarP(&name, "name", "n", "", "full name")
	fs.StringVarP(&email, "email", "e", "", "account email")
	fs.StringVar(&password, "password", "", "account password (prompted when omitted)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := a.readPassword(password)
	if err != nil {
		return err
	}
	req := models.RegisterRequest{Name: name, Email: email, Password: password}
	if err := models.NewValidator().Struct(req); err != nil {
		return domain.NewValidationError(err.Error())
	}

	resp, err := a.client.Register(ctx, req)
	if err != nil {
		return err
	}
	if err := a.store.Save(ctx, session.Session{Token: resp.Token, User: resp.User()}); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	fmt.Fprintf(a.out, "Registered and signed in as %s <%s>\n", resp.Name, resp.Email)
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	if err := a.flagSet("logout").Parse(args); err != nil {
		return err
	}
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// fetchPage runs one fetch for the list flags and returns the controller
func (a *app) fetchPage(ctx context.Context, f *listFlags) (*leadlist.Controller, error) {
	c := a.controller(leadlist.NopNotifier{})
	if err := f.apply(c); err != nil {
		return nil, err
	}
	if err := c.ExecuteFetch(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func runList(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("list")
	var f listFlags
	f.register(fs, a.cfg.PageSize)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := a.fetchPage(ctx, &f)
	if err != nil {
		return err
	}
	printLeads(a.out, c.View())
	return nil
}

func printLeads(w io.Writer, view leadlist.View) {
	if len(view.Rows) == 0 {
		fmt.Fprintln(w, "No leads found")
		return
	}

	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "ID\tNAME\tEMAIL\tCOMPANY\tSTATUS\tSOURCE\tVALUE\tCREATED")
	for _, lead := range view.Rows {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			lead.ID, lead.Name, lead.Email, lead.Company,
			lead.Status.Label(), lead.Source.Label(),
			format.Currency(lead.Value), format.Date(lead.CreatedAt))
	}
	writer.Flush()

	page := view.Page
	fmt.Fprintf(w, "\nShowing %d-%d of %s (page %d of %d)\n",
		page.From, page.To, format.Number(page.Total), page.PageIndex+1, page.PageCount)
}

func runShow(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return domain.NewValidationError("usage: leads show <id>")
	}

	detail, err := leaddetail.Load(ctx, a.client, fs.Arg(0))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s  [%s]  %s\n\n", detail.Name, detail.Status.Label(), detail.Value)
	writer := tabwriter.NewWriter(a.out, 2, 0, 3, ' ', 0)
	for _, row := range detail.Rows {
		fmt.Fprintf(writer, "%s:\t%s\n", row.Label, row.Value)
	}
	writer.Flush()

	if detail.Notes != "" {
		fmt.Fprintf(a.out, "\nNotes:\n%s\n", detail.Notes)
	}

	steps := make([]string, 0, len(detail.Timeline))
	for _, step := range detail.Timeline {
		label := step.Status.Label()
		if step.Current {
			label = "[" + label + "]"
		}
		steps = append(steps, label)
	}
	fmt.Fprintf(a.out, "\nTimeline: %s\n", strings.Join(steps, " > "))
	return nil
}

func runDashboard(ctx context.Context, a *app, args []string) error {
	if err := a.flagSet("dashboard").Parse(args); err != nil {
		return err
	}

	d, err := dashboard.Load(ctx, a.client)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(a.out, 2, 0, 3, ' ', 0)
	for _, card := range d.Cards {
		fmt.Fprintf(writer, "%s:\t%s\n", card.Title, card.Value)
	}
	writer.Flush()

	printSeries(a.out, "Leads by Stage", d.ByStage, d.PlaceholderStage)
	printSeries(a.out, "Leads by Source", d.BySource, d.PlaceholderSource)
	return nil
}

const barWidth = 30

func printSeries(w io.Writer, title string, series []models.GroupCount, placeholder bool) {
	if placeholder {
		title += " (sample)"
	}
	fmt.Fprintf(w, "\n%s\n", title)

	highest := dashboard.MaxCount(series)
	writer := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, g := range series {
		width := 0
		if highest > 0 {
			width = g.Count * barWidth / highest
		}
		fmt.Fprintf(writer, "  %s\t%s\t%d\n", g.ID, strings.Repeat("#", width), g.Count)
	}
	writer.Flush()
}

func runSeed(ctx context.Context, a *app, args []string) error {
	if err := a.flagSet("seed").Parse(args); err != nil {
		return err
	}

	c := a.controller(a.printNotifier())
	r := c.RunSeed(ctx)
	if _, err := c.ApplySeed(r); err != nil {
		return err
	}
	if r.Response != nil {
		fmt.Fprintf(a.out, "%d leads generated\n", r.Response.Count)
	}
	return nil
}

func runAdd(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("add")
	input := models.NewLeadInput()
	var id, status, source string
	fs.StringVar(&id, "id", "", "update this lead instead of creating one")
	fs.StringVarP(&input.Name, "name", "n", "", "full name")
	fs.StringVarP(&input.Email, "email", "e", "", "email address")
	fs.StringVar(&input.Phone, "phone", "", "phone number")
	fs.StringVar(&input.Company, "company", "", "company")
	fs.StringVar(&input.JobTitle, "job-title", "", "job title")
	fs.StringVar(&status, "status", string(models.StatusNew), "pipeline status")
	fs.StringVar(&source, "source", string(models.SourceWebsite), "lead source")
	fs.Float64Var(&input.Value, "value", 0, "deal value in USD")
	fs.StringVar(&input.Notes, "notes", "", "notes")
	fs.StringVar(&input.AssignedTo, "assigned-to", "", "owner of the lead")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var err error
	if input.Status, err = models.ParseLeadStatus(status); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if input.Source, err = models.ParseLeadSource(source); err != nil {
		return domain.NewValidationError(err.Error())
	}
	if err := models.NewValidator().Struct(input); err != nil {
		return domain.NewValidationError(err.Error())
	}

	var lead *models.Lead
	if id != "" {
		lead, err = a.client.UpdateLead(ctx, id, input)
	} else {
		lead, err = a.client.CreateLead(ctx, input)
	}
	if err != nil {
		return err
	}

	verb := "Created"
	if id != "" {
		verb = "Updated"
	}
	fmt.Fprintf(a.out, "%s lead %s (%s)\n", verb, lead.ID, lead.Name)
	return nil
}

// exporter builds the export service, uploading to S3 when a bucket is configured
func (a *app) exporter(ctx context.Context) (*export.Service, error) {
	var uploader export.Uploader
	if a.cfg.S3Bucket != "" {
		s3, err := export.NewS3Uploader(ctx, export.S3Config{
			Region:          a.cfg.AWSRegion,
			Bucket:          a.cfg.S3Bucket,
			AccessKeyID:     a.cfg.AWSAccessKeyID,
			SecretAccessKey: a.cfg.AWSSecretAccessKey,
			Endpoint:        a.cfg.S3Endpoint,
		})
		if err != nil {
			return nil, err
		}
		uploader = s3
	}
	return export.NewService(a.cfg.ExportDir, uploader, a.log), nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := a.flagSet("export")
	var f listFlags
	var formatName string
	f.register(fs, a.cfg.PageSize)
	fs.StringVarP(&formatName, "format", "f", "csv", "csv or xlsx")
	if err := fs.Parse(args); err != nil {
		return err
	}

	exportFormat, err := export.ParseFormat(formatName)
	if err != nil {
		return err
	}

	c, err := a.fetchPage(ctx, &f)
	if err != nil {
		return err
	}

	exporter, err := a.exporter(ctx)
	if err != nil {
		return err
	}
	result, err := exporter.Export(ctx, exportFormat, c.Rows())
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Exported %d leads to %s\n", result.Rows, result.Path)
	if result.Location != "" {
		fmt.Fprintf(a.out, "Uploaded to %s\n", result.Location)
	}
	return nil
}
