package monitoringhttp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/zainulsyai/eko-hajj/internal/monitoring"
	"github.com/zainulsyai/eko-hajj/internal/platform/httpx"
	"github.com/zainulsyai/eko-hajj/internal/shared"
	"github.com/zainulsyai/eko-hajj/internal/view"
)

const requestTimeout = 2 * time.Second

// Flash messages shown after form actions.
const (
	msgIncomplete   = "Mohon lengkapi data surveyor dan tanggal monitoring."
	msgSubmitted    = "Data monitoring berhasil dikirim."
	msgDraft        = "Data berhasil disimpan sebagai Draft."
	msgFormReset    = "Isian identitas form telah dikosongkan."
	msgConfirmReset = "Konfirmasi diperlukan sebelum mereset data."
	msgNotReady     = "Data masih dimuat, coba lagi sebentar."
)

// Store is the record store contract used by the form handlers.
type Store interface {
	All(ctx context.Context, c monitoring.Collection) ([]monitoring.Record, error)
	Snapshot(ctx context.Context) (monitoring.Snapshot, error)
	AddRecord(ctx context.Context, c monitoring.Collection, fields map[string]string) (monitoring.Record, error)
	RemoveRecord(ctx context.Context, c monitoring.Collection, id int) (bool, error)
	UpdateField(ctx context.Context, c monitoring.Collection, id int, field, value string) (bool, error)
	BroadcastField(ctx context.Context, c monitoring.Collection, field, value string) error
	Identity(c monitoring.Collection) map[string]string
	ResetIdentity(c monitoring.Collection, confirm bool) error
	Reset(ctx context.Context, confirm bool) error
	Ready() bool
	Version() int64
}

// Warmer schedules a cache warmup after the store is re-seeded.
type Warmer interface {
	EnqueueWarmup(ctx context.Context) error
}

// Handler serves the survey forms, their JSON mirror and the settings page.
type Handler struct {
	logger    *slog.Logger
	store     Store
	templates *view.Engine
	csrf      *shared.CSRFManager
	warmer    Warmer
	validator *validator.Validate
}

// NewHandler constructs the monitoring HTTP handler. warmer may be nil.
func NewHandler(logger *slog.Logger, store Store, templates *view.Engine, csrf *shared.CSRFManager, warmer Warmer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		store:     store,
		templates: templates,
		csrf:      csrf,
		warmer:    warmer,
		validator: validator.New(),
	}
}

// IdentityInput is one rendered identity header field.
type IdentityInput struct {
	monitoring.FieldSpec
	Value string
}

// LocationTab switches between the spice collections.
type LocationTab struct {
	Label      string
	Collection monitoring.Collection
	Active     bool
}

// FormViewModel feeds pages/form.html.
type FormViewModel struct {
	Collection monitoring.Collection
	Descriptor monitoring.Descriptor
	Locations  []LocationTab
	Identity   []IdentityInput
	Records    []monitoring.Record
	Total      int
	Term       string
	Loading    bool
	Action     string
}

type submitForm struct {
	Surveyor string `validate:"required"`
	Date     string `validate:"required"`
}

func (h *Handler) collection(w http.ResponseWriter, r *http.Request) (monitoring.Collection, bool) {
	c, err := monitoring.ParseCollection(chi.URLParam(r, "collection"))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return c, true
}

func formPath(c monitoring.Collection) string {
	return "/forms/" + string(c)
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	records, err := h.store.All(ctx, c)
	if err != nil {
		h.handleServerError(w, "load collection", err)
		return
	}
	d := monitoring.DescribeCollection(c)
	term := r.URL.Query().Get("q")
	vm := FormViewModel{
		Collection: c,
		Descriptor: d,
		Locations:  locationTabs(c),
		Identity:   identityInputs(d, h.store.Identity(c)),
		Records:    filterRecords(records, d.TitleField, term),
		Total:      len(records),
		Term:       term,
		Loading:    !h.store.Ready(),
		Action:     formPath(c),
	}
	data := view.Page(r, h.csrf, d.FormTitle, vm)
	if err := h.templates.Render(w, "pages/form.html", data); err != nil {
		h.handleServerError(w, "render template", err)
	}
}

func locationTabs(c monitoring.Collection) []LocationTab {
	if c.Kind() != monitoring.KindSpice {
		return nil
	}
	tabs := make([]LocationTab, 0, 2)
	for _, sc := range monitoring.CollectionsOf(monitoring.KindSpice) {
		tabs = append(tabs, LocationTab{Label: string(sc.Location()), Collection: sc, Active: sc == c})
	}
	return tabs
}

func identityInputs(d monitoring.Descriptor, values map[string]string) []IdentityInput {
	out := make([]IdentityInput, 0, len(d.Identity))
	for _, spec := range d.Identity {
		v := values[spec.Field]
		switch spec.Input {
		case monitoring.InputDate:
			v = monitoring.DateToISO(v)
		case monitoring.InputTime:
			v = monitoring.TimeToPicker(v)
		}
		out = append(out, IdentityInput{FieldSpec: spec, Value: v})
	}
	return out
}

// filterRecords keeps records whose title field contains term, case-insensitively.
func filterRecords(records []monitoring.Record, titleField, term string) []monitoring.Record {
	if term == "" {
		return records
	}
	needle := strings.ToLower(term)
	out := make([]monitoring.Record, 0, len(records))
	for _, rec := range records {
		if strings.Contains(strings.ToLower(monitoring.Field(rec, titleField)), needle) {
			out = append(out, rec)
		}
	}
	return out
}

// normalizeInput title-cases free text typed into text inputs.
func normalizeInput(d monitoring.Descriptor, field, value string) string {
	for _, specs := range [][]monitoring.FieldSpec{d.Identity, d.Entry} {
		for _, spec := range specs {
			if spec.Field == field && spec.Input == monitoring.InputText {
				return monitoring.TitleCase(value)
			}
		}
	}
	return value
}

// broadcastIdentity converts picker values before broadcasting so a cleared
// date stays empty.
func (h *Handler) broadcastIdentity(ctx context.Context, c monitoring.Collection, field, value string) error {
	d := monitoring.DescribeCollection(c)
	if !d.IsIdentity(field) {
		return fmt.Errorf("%w: %q is not an identity field", httpx.ErrValidation, field)
	}
	for _, spec := range d.Identity {
		if spec.Field != field {
			continue
		}
		switch spec.Input {
		case monitoring.InputDate:
			value = monitoring.DateFromISO(value)
		case monitoring.InputTime:
			value = monitoring.TimeFromPicker(value)
		default:
			value = normalizeInput(d, field, value)
		}
	}
	return h.store.BroadcastField(ctx, c, field, value)
}

func (h *Handler) entryFields(d monitoring.Descriptor, r *http.Request) map[string]string {
	fields := make(map[string]string)
	for _, spec := range d.Entry {
		if _, ok := r.PostForm[spec.Field]; !ok {
			continue
		}
		fields[spec.Field] = normalizeInput(d, spec.Field, r.PostFormValue(spec.Field))
	}
	return fields
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	rec, err := h.store.AddRecord(r.Context(), c, h.entryFields(monitoring.DescribeCollection(c), r))
	if err != nil {
		h.formError(w, r, c, "add record", err)
		return
	}
	h.logger.Info("record added", slog.String("collection", string(c)), slog.Int("id", rec.RecordID()))
	h.redirect(w, r, c)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	removed, err := h.store.RemoveRecord(r.Context(), c, id)
	if err != nil {
		h.formError(w, r, c, "remove record", err)
		return
	}
	if removed {
		h.logger.Info("record removed", slog.String("collection", string(c)), slog.Int("id", id))
	}
	h.redirect(w, r, c)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	d := monitoring.DescribeCollection(c)
	field := r.PostFormValue("field")
	value := normalizeInput(d, field, r.PostFormValue("value"))
	if _, err := h.store.UpdateField(r.Context(), c, id, field, value); err != nil {
		h.formError(w, r, c, "update field", err)
		return
	}
	h.redirect(w, r, c)
}

func (h *Handler) handleIdentity(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	d := monitoring.DescribeCollection(c)
	// The whole identity header may be posted at once; each field present is broadcast.
	for _, spec := range d.Identity {
		if _, ok := r.PostForm[spec.Field]; !ok {
			continue
		}
		if err := h.broadcastIdentity(r.Context(), c, spec.Field, r.PostFormValue(spec.Field)); err != nil {
			h.formError(w, r, c, "broadcast identity", err)
			return
		}
	}
	h.redirect(w, r, c)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
		return
	}
	if err := h.store.ResetIdentity(c, monitoring.ParseBool(r.PostFormValue("confirm"))); err != nil {
		h.formError(w, r, c, "reset identity", err)
		return
	}
	h.flash(r, shared.FlashInfo, msgFormReset)
	h.redirect(w, r, c)
}

func (h *Handler) handleDraft(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	h.flash(r, shared.FlashSuccess, msgDraft)
	h.redirect(w, r, c)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	c, ok := h.collection(w, r)
	if !ok {
		return
	}
	if err := h.checkSubmit(c); err != nil {
		h.flash(r, shared.FlashError, msgIncomplete)
		h.redirect(w, r, c)
		return
	}
	h.logger.Info("form submitted", slog.String("collection", string(c)))
	h.flash(r, shared.FlashSuccess, msgSubmitted)
	http.Redirect(w, r, "/portal", http.StatusSeeOther)
}

// checkSubmit enforces the surveyor and date presence check on kinds that need it.
func (h *Handler) checkSubmit(c monitoring.Collection) error {
	if !monitoring.DescribeCollection(c).RequireSurveyorDate {
		return nil
	}
	ident := h.store.Identity(c)
	form := submitForm{Surveyor: strings.TrimSpace(ident["surveyor"]), Date: ident["date"]}
	if err := h.validator.Struct(form); err != nil {
		return fmt.Errorf("%w: %s", httpx.ErrValidation, msgIncomplete)
	}
	return nil
}

func (h *Handler) flash(r *http.Request, kind, msg string) {
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: kind, Message: msg})
	}
}

func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, c monitoring.Collection) {
	http.Redirect(w, r, formPath(c), http.StatusSeeOther)
}

// formError turns store errors into a flash on the form, or a 500.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, c monitoring.Collection, context string, err error) {
	switch {
	case errors.Is(err, monitoring.ErrUnknownCollection):
		http.NotFound(w, r)
	case errors.Is(err, monitoring.ErrConfirmRequired):
		h.flash(r, shared.FlashError, msgConfirmReset)
		h.redirect(w, r, c)
	case errors.Is(err, monitoring.ErrNotReady):
		h.flash(r, shared.FlashInfo, msgNotReady)
		h.redirect(w, r, c)
	case errors.Is(err, httpx.ErrValidation):
		http.Error(w, "Parameter tidak valid", http.StatusBadRequest)
	default:
		h.handleServerError(w, context, err)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, context string, err error) {
	h.logError(context, err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) logError(context string, err error) {
	if h.logger != nil {
		h.logger.Error(context, slog.Any("error", err))
	}
}
