package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/zapinvo/zapinvo/internal/entity"
	"github.com/zapinvo/zapinvo/internal/export"
	"github.com/zapinvo/zapinvo/internal/extract"
	"github.com/zapinvo/zapinvo/internal/form"
	"github.com/zapinvo/zapinvo/internal/guard"
	"github.com/zapinvo/zapinvo/internal/render"
	"github.com/zapinvo/zapinvo/internal/settings"
	"github.com/zapinvo/zapinvo/internal/store"
)

// repl is the single control flow of the editing session. Every mutation
// of the record list happens here, in response to one command at a time,
// so the form session needs no locking.
type repl struct {
	ctx       context.Context
	in        io.Reader
	out       io.Writer
	session   *form.Session
	flow      *guard.Flow
	driver    *render.Driver
	extractor extract.FieldExtractor
	remote    store.RemoteStore
	settings  *settings.Store
	exporter  *export.Service

	scanner *bufio.Scanner
}

func (r *repl) run() {
	r.scanner = bufio.NewScanner(r.in)
	r.scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	r.printf("ZapInvo invoice editor. Type 'help' for commands.\n")
	for {
		select {
		case <-r.ctx.Done():
			r.printf("\nbye.\n")
			return
		default:
		}
		r.printf("> ")
		line, ok := r.readLine()
		if !ok {
			r.printf("\nbye.\n")
			return
		}
		cmd, arg := splitCommand(line)
		switch cmd {
		case "":
		case "help":
			r.help()
		case "list":
			r.list()
		case "add":
			rec := r.session.Add()
			r.printf("added invoice #%d (%s)\n", r.session.Len(), rec.DisplayNumber())
		case "edit":
			r.edit(arg)
		case "remove":
			r.remove(arg)
		case "fill":
			r.magicFill(arg)
		case "print":
			r.requestAction(guard.ActionPrint)
		case "pdf":
			if arg != "" {
				r.driver.FilePath = arg
			}
			r.requestAction(guard.ActionExport)
		case "xlsx":
			r.exportXLSX(arg)
		case "save":
			r.saveAll()
		case "load":
			r.loadAll()
		case "settings":
			r.editSettings()
		case "quit", "exit":
			r.printf("bye.\n")
			return
		default:
			r.printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (r *repl) help() {
	r.printf(`commands:
  list            show all invoices
  add             append a blank invoice
  edit <n>        edit invoice n field by field
  remove <n>      delete invoice n (the last one resets to a blank)
  fill <n>        magic-fill invoice n from pasted text (end with '.')
  print           print all invoices (two-column FROM/TO strips)
  pdf [path]      export all invoices to a PDF file
  xlsx [path]     write an XLSX summary of the list
  save            upsert every invoice to the remote store
  load            replace the list with records from the remote store
  settings        view or change the remote store settings
  quit            leave the editor
`)
}

func (r *repl) list() {
	for i, rec := range r.session.Records() {
		amount := rec.TotalAmount
		if amount == "" {
			amount = "-"
		}
		r.printf("%2d. [%s] %s  from %q to %q  amount %s\n",
			i+1, rec.Date, rec.DisplayNumber(), rec.Business.Name, rec.Customer.Name, amount)
	}
}

func (r *repl) edit(arg string) {
	rec, ok := r.recordAt(arg)
	if !ok {
		return
	}
	r.printf("editing invoice %s (enter keeps the current value)\n", rec.DisplayNumber())
	rec.InvoiceNumber = r.prompt("Invoice number", rec.InvoiceNumber)
	rec.Date = r.prompt("Date (YYYY-MM-DD)", rec.Date)
	rec.TotalAmount = r.prompt("Total amount", rec.TotalAmount)
	r.printf("-- business (FROM) --\n")
	r.editAddress(&rec.Business.AddressDetails)
	rec.Business.LogoURL = r.prompt("Logo data URL", rec.Business.LogoURL)
	r.printf("-- customer (TO) --\n")
	r.editAddress(&rec.Customer)
	if !r.session.Update(rec) {
		r.printf("invoice disappeared while editing; nothing changed\n")
	}
}

func (r *repl) editAddress(a *entity.AddressDetails) {
	a.Name = r.prompt("Name", a.Name)
	a.AddressLine1 = r.prompt("Address", a.AddressLine1)
	a.City = r.prompt("City", a.City)
	a.State = r.prompt("State", a.State)
	a.Pincode = r.prompt("Pincode", a.Pincode)
	a.Phone = r.prompt("Phone", a.Phone)
}

func (r *repl) remove(arg string) {
	rec, ok := r.recordAt(arg)
	if !ok {
		return
	}
	r.session.Remove(rec.ID)
	r.printf("removed; %d invoice(s) remain\n", r.session.Len())
}

// magicFill reads pasted free text terminated by a single '.' line, asks
// the extraction model for a guess and merges it into the record. The
// extractor never errors: an empty guess just means nothing was found.
func (r *repl) magicFill(arg string) {
	rec, ok := r.recordAt(arg)
	if !ok {
		return
	}
	r.printf("paste invoice text, end with a single '.' line:\n")
	var lines []string
	for {
		line, ok := r.readLine()
		if !ok || line == "." {
			break
		}
		lines = append(lines, line)
	}
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		r.printf("nothing to fill from\n")
		return
	}
	fields := r.extractor.ExtractFields(r.ctx, text)
	if fields.IsEmpty() {
		r.printf("no fields found\n")
		return
	}
	if r.session.Update(fields.ApplyTo(rec)) {
		r.printf("filled invoice %s\n", rec.DisplayNumber())
	}
}

// requestAction runs the gated print/export flow. An incomplete record
// set parks the action and asks for explicit confirmation; confirming
// force-proceeds exactly once, cancelling returns to editing.
func (r *repl) requestAction(action guard.Action) {
	res, err := r.flow.Request(action, r.session.Records())
	if err != nil {
		r.actionFailed(action, err)
		return
	}
	if res.Complete {
		return
	}
	r.printf("invoice #%d is incomplete; missing: %s\n",
		res.Position, strings.Join(res.MissingFields, ", "))
	answer := r.prompt(fmt.Sprintf("%s anyway? [y/N]", action), "")
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		if err := r.flow.Confirm(r.session.Records()); err != nil {
			r.actionFailed(action, err)
		}
	} else {
		r.flow.Cancel()
		r.printf("back to editing (invoice #%d)\n", res.Position)
	}
}

func (r *repl) actionFailed(action guard.Action, err error) {
	if action == guard.ActionExport {
		r.printf("export failed: %v\nuse 'print' and your system's save-as-PDF as a fallback\n", err)
		return
	}
	r.printf("%s failed: %v\n", action, err)
}

func (r *repl) exportXLSX(arg string) {
	path := arg
	if path == "" {
		path = "zapinvo-" + time.Now().Format("2006-01-02") + ".xlsx"
	}
	data, err := r.exporter.InvoicesXLSX(r.session.Records())
	if err != nil {
		r.printf("xlsx export failed: %v\n", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		r.printf("xlsx export failed: %v\n", err)
		return
	}
	r.printf("wrote %s\n", path)
}

func (r *repl) saveAll() {
	records := r.session.Records()
	r.printf("saving %d invoice(s)...\n", len(records))
	if err := store.SaveAll(r.ctx, r.remote, records); err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			r.printf("remote store not configured; run 'settings' first\n")
			return
		}
		r.printf("save failed: %v\n", err)
		return
	}
	r.printf("saved!\n")
}

func (r *repl) loadAll() {
	records, err := r.remote.LoadAll(r.ctx)
	if err != nil {
		if errors.Is(err, store.ErrNotConfigured) {
			r.printf("remote store not configured; run 'settings' first\n")
			return
		}
		r.printf("load failed: %v\n", err)
		return
	}
	if len(records) == 0 {
		r.printf("no invoices found\n")
		return
	}
	r.session.Replace(records)
	r.printf("loaded %d invoice(s)\n", len(records))
}

func (r *repl) editSettings() {
	cfg := r.settings.Current()
	r.printf("remote store settings (enter keeps the current value)\n")
	cfg.Endpoint = r.prompt("Endpoint URL", cfg.Endpoint)
	cfg.APIKey = r.prompt("API key", cfg.APIKey)
	cfg.DataSource = r.prompt("Data source", cfg.DataSource)
	cfg.Database = r.prompt("Database", cfg.Database)
	cfg.Collection = r.prompt("Collection", cfg.Collection)
	if err := r.settings.Save(cfg); err != nil {
		r.printf("not saved: %v\n", err)
		return
	}
	if cfg.IsConfigured() {
		r.printf("saved; remote store is configured\n")
	} else {
		r.printf("saved; endpoint and API key are still needed before save/load\n")
	}
}

func (r *repl) recordAt(arg string) (entity.InvoiceRecord, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		r.printf("expected an invoice position, e.g. 'edit 1'\n")
		return entity.InvoiceRecord{}, false
	}
	rec, ok := r.session.At(n)
	if !ok {
		r.printf("no invoice #%d (have %d)\n", n, r.session.Len())
		return entity.InvoiceRecord{}, false
	}
	return rec, true
}

func (r *repl) prompt(label, current string) string {
	if current != "" {
		r.printf("%s [%s]: ", label, current)
	} else {
		r.printf("%s: ", label)
	}
	line, ok := r.readLine()
	if !ok || strings.TrimSpace(line) == "" {
		return current
	}
	return strings.TrimSpace(line)
}

func (r *repl) readLine() (string, bool) {
	if !r.scanner.Scan() {
		return "", false
	}
	return r.scanner.Text(), true
}

func (r *repl) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func splitCommand(line string) (cmd, arg string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", ""
	}
	return strings.ToLower(fields[0]), strings.Join(fields[1:], " ")
}
