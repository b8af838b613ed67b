package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/onehealth/clinicdesk/internal/cli"
	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/domain/clinic"
	"github.com/onehealth/clinicdesk/internal/domain/doctor"
	"github.com/onehealth/clinicdesk/internal/domain/location"
	"github.com/onehealth/clinicdesk/internal/domain/patient"
	"github.com/onehealth/clinicdesk/internal/domain/staff"
	"github.com/onehealth/clinicdesk/internal/domain/visit"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/submission"
	"github.com/onehealth/clinicdesk/pkg/pagination"
)

func pincodeCmd(a *app) *cobra.Command {
	var (
		district, subDistrict, town string
		interactive                 bool
	)
	cmd := &cobra.Command{
		Use:   "pincode <pin>",
		Short: "Look up a PIN code and walk its district, taluka and village options",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			lookup, closeLookup, err := newLookup(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeLookup()

			fields := location.AddressFields{Pin: args[0]}
			if interactive {
				if err := cli.FillAddress(ctx, a.prompter, lookup, &fields, a.logger); err != nil {
					return err
				}
				return a.printer.Print(fields, nil)
			}

			form := location.NewAddressForm(lookup, &fields, a.logger)
			res := form.ChangePincode(ctx, args[0])
			for _, step := range []struct {
				name string
				set  func(string) error
			}{{district, form.SelectDistrict}, {subDistrict, form.SelectSubDistrict}, {town, form.SelectTown}} {
				if step.name == "" {
					break
				}
				if err := step.set(step.name); err != nil {
					return err
				}
			}

			opts := form.Options()
			out := struct {
				Result  location.LookupResult  `json:"result" yaml:"result"`
				Address location.AddressFields `json:"address" yaml:"address"`
				Options location.Options       `json:"options" yaml:"options"`
			}{res, form.Fields(), opts}
			return a.printer.Print(out, func() cli.Table {
				t := cli.Table{Header: []string{"LEVEL", "OPTIONS"}}
				t.Rows = append(t.Rows,
					[]string{"result", res.String()},
					[]string{"state", fields.State},
					[]string{"districts", strings.Join(opts.Districts, ", ")},
					[]string{"talukas", strings.Join(opts.SubDistricts, ", ")},
					[]string{"villages", strings.Join(opts.Towns, ", ")},
				)
				return t
			})
		},
	}
	cmd.Flags().StringVar(&district, "district", "", "district to select")
	cmd.Flags().StringVar(&subDistrict, "sub-district", "", "taluka to select (needs --district)")
	cmd.Flags().StringVar(&town, "town", "", "village to select (needs --sub-district)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "choose each level at a prompt")
	return cmd
}

func registerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a clinic, doctor, patient, staff member or visit",
	}

	cmd.AddCommand(registerKind(a, "clinic", func(ctx context.Context, file string, interactive bool) error {
		return register[clinic.FormData, clinic.CreatePayload, clinic.Clinic](ctx, a, clinic.Registration(), clinic.NewForm,
			func(f *clinic.FormData) *location.AddressFields { return &f.AddressFields }, file, interactive)
	}))
	cmd.AddCommand(registerKind(a, "doctor", func(ctx context.Context, file string, interactive bool) error {
		return register[doctor.FormData, doctor.CreatePayload, doctor.Created](ctx, a, doctor.Registration(), doctor.NewForm,
			func(f *doctor.FormData) *location.AddressFields { return &f.AddressFields }, file, interactive)
	}))
	cmd.AddCommand(registerKind(a, "patient", func(ctx context.Context, file string, interactive bool) error {
		return register[patient.FormData, patient.CreatePayload, patient.Patient](ctx, a, patient.Registration(), patient.NewForm,
			func(f *patient.FormData) *location.AddressFields { return &f.AddressFields }, file, interactive)
	}))
	cmd.AddCommand(registerKind(a, "staff", func(ctx context.Context, file string, interactive bool) error {
		return register[staff.FormData, staff.CreatePayload, staff.Member](ctx, a, staff.Registration(), staff.NewForm, nil, file, interactive)
	}))
	cmd.AddCommand(registerKind(a, "visit", func(ctx context.Context, file string, interactive bool) error {
		initial := visit.NewForm
		if interactive {
			f, err := a.pickVisitParticipants(ctx)
			if err != nil {
				return err
			}
			initial = func() visit.FormData { return f }
		}
		return register[visit.FormData, visit.CreatePayload, visit.Visit](ctx, a, visit.Registration(), initial, nil, file, interactive)
	}))
	return cmd
}

func registerKind(a *app, kind string, run func(ctx context.Context, file string, interactive bool) error) *cobra.Command {
	var (
		file        string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   kind,
		Short: "Register a " + kind,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && !interactive {
				return fmt.Errorf("pass --file, --interactive or both")
			}
			return run(commandContext(cmd), file, interactive)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML form file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "prompt for missing fields")
	return cmd
}

// register fills a form from a file and prompts, then submits it once.
// address, when set, points at the form's address block for the pincode
// cascade.
func register[F, P, R any](ctx context.Context, a *app, entity submission.Entity[F, P], initial func() F, address func(*F) *location.AddressFields, file string, interactive bool) error {
	flow := submission.NewFlow(submission.New[F, P, R](entity, a.api, a.logger), initial)

	if file != "" {
		v, err := cli.LoadForm(file, initial())
		if err != nil {
			return err
		}
		*flow.Values() = v
	}

	if interactive {
		if address != nil {
			lookup, closeLookup, err := newLookup(ctx, a.cfg, a.logger)
			if err != nil {
				return err
			}
			defer closeLookup()
			if err := cli.FillAddress(ctx, a.prompter, lookup, address(flow.Values()), a.logger); err != nil {
				return err
			}
		}
		if err := cli.FillMissing(ctx, a.prompter, flow.Values()); err != nil {
			return err
		}
	}

	out := flow.Submit(ctx, a.sess, a.user)
	a.printer.Message(out.Success, out.Message)
	if !out.Success {
		return errFailed
	}
	return nil
}

// pickVisitParticipants offers the clinic's patients and doctors as
// choices, preselecting nothing but the signed-in doctor.
func (a *app) pickVisitParticipants(ctx context.Context) (visit.FormData, error) {
	f := visit.NewForm()
	if err := a.requireSession(); err != nil {
		return f, err
	}
	opts, err := visit.NewService(a.api).Options(ctx, a.sess.AccessToken, a.user)
	if err != nil {
		return f, err
	}

	patients := make([]string, len(opts.Patients))
	for i, p := range opts.Patients {
		patients[i] = p.PseudonymID + "  " + p.DisplayName()
	}
	if len(patients) > 0 {
		picked, err := a.prompter.Select(ctx, "Patient", patients)
		if err != nil {
			return f, err
		}
		f.PatientID = opts.Patients[indexOf(patients, picked)].ID
	}

	f.DoctorID = opts.DefaultDoctorID
	if f.DoctorID == "" && len(opts.Doctors) > 0 {
		doctors := make([]string, len(opts.Doctors))
		for i, d := range opts.Doctors {
			doctors[i] = d.Person.FullName + " (" + d.User.Username + ")"
		}
		picked, err := a.prompter.Select(ctx, "Doctor", doctors)
		if err != nil {
			return f, err
		}
		f.DoctorID = opts.Doctors[indexOf(doctors, picked)].User.ID
	}

	types := []string{"CLINIC", "HOME", "ON_CALL", "FARM"}
	if f.VisitType, err = a.prompter.Select(ctx, "Visit type", types); err != nil {
		return f, err
	}
	return f, nil
}

func indexOf(options []string, v string) int {
	for i, o := range options {
		if o == v {
			return i
		}
	}
	return 0
}

func searchCmd(a *app) *cobra.Command {
	var clinicType string
	cmd := &cobra.Command{
		Use:       "search <medicine|disease> <query>",
		Short:     "Search the medicine list or the disease master",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{catalog.KindMedicine, catalog.KindDisease},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx := commandContext(cmd)
			svc, _, closeCatalog, err := newCatalog(ctx, a.cfg, a.api, a.logger)
			if err != nil {
				return err
			}
			defer closeCatalog()

			if clinicType == "" {
				clinicType = a.user.ClinicType()
			}
			kind, q := strings.ToLower(args[0]), args[1]
			res, err := svc.LiveSearch(a.sess.AccessToken, clinicType).Search(ctx, kind, q)
			if err != nil {
				return err
			}

			return a.printer.Print(res, func() cli.Table {
				switch list := res.(type) {
				case []catalog.Medicine:
					t := cli.Table{Header: []string{"ID", "PRODUCT", "SALT", "CATEGORY", "PRICE"}}
					for _, m := range list {
						t.Rows = append(t.Rows, []string{m.ID, m.ProductName, m.SaltComposition, m.SubCategory, m.ProductPrice})
					}
					return t
				case []catalog.Disease:
					t := cli.Table{Header: []string{"VALUE", "LABEL", "ICD", "SNOMED", "TYPE"}}
					for _, d := range list {
						t.Rows = append(t.Rows, []string{d.Value, d.Label, d.ICDCode, d.SnomedID, d.DiseaseType})
					}
					return t
				}
				return cli.Table{}
			})
		},
	}
	cmd.Flags().StringVar(&clinicType, "clinic-type", "", "HUMAN, PET or LIVESTOCK (default: your clinic's type)")
	return cmd
}

func visitsCmd(a *app) *cobra.Command {
	var clinicID, patientID string
	cmd := &cobra.Command{
		Use:   "visits",
		Short: "List, show and export consultations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return a.requireSession()
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List visits, optionally for one clinic or patient",
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := visit.NewService(a.api).List(commandContext(cmd), a.sess.AccessToken,
				visit.ListFilter{ClinicID: clinicID, PatientID: patientID})
			if err != nil {
				return err
			}
			return a.printer.Print(out, visitTable(out))
		},
	}
	list.Flags().StringVar(&clinicID, "clinic", "", "clinic ID")
	list.Flags().StringVar(&patientID, "patient", "", "patient ID")

	ongoing := &cobra.Command{
		Use:   "ongoing",
		Short: "List the ongoing visits of a clinic",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := a.clinicID(clinicID)
			if err != nil {
				return err
			}
			out, err := visit.NewService(a.api).Ongoing(commandContext(cmd), a.sess.AccessToken, id)
			if err != nil {
				return err
			}
			return a.printer.Print(out, visitTable(out))
		},
	}
	ongoing.Flags().StringVar(&clinicID, "clinic", "", "clinic ID (default: your clinic)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := visit.NewService(a.api).Get(commandContext(cmd), a.sess.AccessToken, args[0])
			if err != nil {
				return err
			}
			return a.printer.Print(out, nil)
		},
	}

	var outFile string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write visits to an Excel workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := commandContext(cmd)
			svc := visit.NewService(a.api)
			var (
				visits []visit.Visit
				err    error
			)
			if clinicID == "" && patientID == "" {
				id, cerr := a.clinicID("")
				if cerr != nil {
					return cerr
				}
				visits, err = svc.Ongoing(ctx, a.sess.AccessToken, id)
			} else {
				visits, err = svc.List(ctx, a.sess.AccessToken, visit.ListFilter{ClinicID: clinicID, PatientID: patientID})
			}
			if err != nil {
				return err
			}
			b, err := visit.ExportXLSX(visits)
			if err != nil {
				return err
			}
			if outFile == "" {
				outFile = "visits-" + time.Now().Format("20060102") + ".xlsx"
			}
			if err := os.WriteFile(outFile, b, 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			a.printer.Message(true, fmt.Sprintf("Exported %d visits to %s", len(visits), outFile))
			return nil
		},
	}
	export.Flags().StringVar(&clinicID, "clinic", "", "clinic ID")
	export.Flags().StringVar(&patientID, "patient", "", "patient ID")
	export.Flags().StringVar(&outFile, "out", "", "output file (default visits-YYYYMMDD.xlsx)")

	cmd.AddCommand(list, ongoing, show, export)
	return cmd
}

func visitTable(visits []visit.Visit) func() cli.Table {
	return func() cli.Table {
		t := cli.Table{Header: []string{"ID", "PATIENT", "DOCTOR", "TYPE", "STATE", "STARTED", "VITALS"}}
		for _, v := range visits {
			t.Rows = append(t.Rows, []string{
				v.ID, v.Patient.Name(), v.Doctor.Person.FullName, v.VisitType, v.WorkflowState, v.StartedAt, v.Vitals.String(),
			})
		}
		return t
	}
}

func rolesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "roles",
		Short: "List the roles staff can be given",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			roles, err := staff.NewService(a.api).Roles(commandContext(cmd), a.sess.AccessToken)
			if err != nil {
				return err
			}
			return a.printer.Print(roles, func() cli.Table {
				t := cli.Table{Header: []string{"ID", "ROLE", "PRIORITY", "ACTIVE"}}
				for _, r := range roles {
					t.Rows = append(t.Rows, []string{r.ID, r.RoleName, strconv.Itoa(r.Priority), strconv.FormatBool(r.IsActive)})
				}
				return t
			})
		},
	}
}

func clinicsCmd(a *app) *cobra.Command {
	var (
		active      bool
		search      string
		tenant      bool
		page, limit int
	)
	cmd := &cobra.Command{
		Use:   "clinics",
		Short: "List clinics, or page through your tenant's clinics with --tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireSession(); err != nil {
				return err
			}
			ctx := commandContext(cmd)
			svc := clinic.NewService(a.api)

			var clinics []clinic.Clinic
			if tenant {
				if a.user.TenantID == "" {
					return fmt.Errorf("no tenant in the access token")
				}
				p, err := svc.ByTenant(ctx, a.sess.AccessToken, a.user.TenantID, pagination.New(page, limit))
				if err != nil {
					return err
				}
				a.logger.Debug().Int("page", p.CurrentPage).Int("pages", p.TotalPages).Int("total", p.Total).Msg("clinic page")
				clinics = p.Data
			} else {
				var err error
				clinics, err = svc.List(ctx, a.sess.AccessToken, clinic.ListFilter{ActiveOnly: active, Search: search})
				if err != nil {
					return err
				}
			}
			return a.printer.Print(clinics, func() cli.Table {
				t := cli.Table{Header: []string{"ID", "NAME", "TYPE", "ACTIVE", "PHONE", "EMAIL"}}
				for _, c := range clinics {
					t.Rows = append(t.Rows, []string{c.ID, c.Name, c.ClinicType, strconv.FormatBool(c.IsActive), c.Phone, c.Email})
				}
				return t
			})
		},
	}
	cmd.Flags().BoolVar(&active, "active", false, "only active clinics")
	cmd.Flags().StringVar(&search, "search", "", "name search")
	cmd.Flags().BoolVar(&tenant, "tenant", false, "page through the signed-in tenant's clinics")
	cmd.Flags().IntVar(&page, "page", 1, "page number with --tenant")
	cmd.Flags().IntVar(&limit, "limit", pagination.DefaultLimit, "page size with --tenant")
	return cmd
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the user and expiry of ACCESS_TOKEN",
		RunE: func(cmd *cobra.Command, args []string) error {
			info := auth.Info(a.cfg.AccessToken, []byte(a.cfg.AuthSigningKey), time.Now())
			return a.printer.Print(info, func() cli.Table {
				t := cli.Table{Header: []string{"FIELD", "VALUE"}}
				t.Rows = append(t.Rows, []string{"signed in", strconv.FormatBool(info.SignedIn)})
				if info.Token.ExpiresAt != nil {
					t.Rows = append(t.Rows, []string{"expires", info.Token.ExpiresAt.Format(time.RFC3339)})
				}
				if u := info.User; u != nil {
					t.Rows = append(t.Rows,
						[]string{"username", u.Username},
						[]string{"tenant", u.TenantID},
						[]string{"clinic", u.ClinicID},
						[]string{"clinic type", u.ClinicType()},
					)
				}
				return t
			})
		},
	}
}
