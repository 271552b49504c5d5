// internal/workspace/workspace.go
package workspace

import (
	"context"
	"net/http"
	"sync"
	"time"

	"msm-console/internal/config"
	"msm-console/internal/domain/billing"
	"msm-console/internal/domain/dashboard"
	"msm-console/internal/domain/masterdata"
	"msm-console/internal/domain/role"
	"msm-console/internal/domain/user"
	wstypes "msm-console/internal/domain/websocket"
	"msm-console/internal/listview"
	"msm-console/internal/pkg/apiclient"
	"msm-console/internal/pkg/paging"
	"msm-console/internal/pkg/querycache"
	"msm-console/internal/pkg/scope"
	"msm-console/internal/pkg/session"
	"msm-console/internal/repository"
	authsvc "msm-console/internal/service/auth"
	dashboardsvc "msm-console/internal/service/dashboard"
	"msm-console/internal/service/resource"
	rolesvc "msm-console/internal/service/role"
	ticketsvc "msm-console/internal/service/ticket"
	usersvc "msm-console/internal/service/user"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Notifier delivers push events to the browser connections of a workspace.
type Notifier interface {
	Push(workspaceID string, msg *wstypes.WSMessage)
}

// Deps are shared by every workspace of the process.
type Deps struct {
	Backend    repository.Backend
	Config     config.AppConfig
	HTTPClient *http.Client
	Limiter    *rate.Limiter
	Notifier   Notifier
	Logger     *zap.Logger
}

// Workspace is the console state of one browser: its session, company
// scope, query cache, services and list screens.
type Workspace struct {
	ID      string
	Store   repository.LocalStore
	Nav     *Navigator
	Session *session.Manager
	Company *scope.Company
	Cache   *querycache.Cache
	API     *apiclient.Client

	Auth      *authsvc.AuthService
	Users     *usersvc.UserService
	Roles     *rolesvc.RoleService
	Tickets   *ticketsvc.TicketService
	Dashboard *dashboardsvc.DashboardService

	Companies    *resource.Service[masterdata.Company, masterdata.CompanyRequest]
	Machines     *resource.Service[masterdata.Machine, masterdata.MachineRequest]
	BankAccounts *resource.Service[masterdata.BankAccount, masterdata.BankAccountRequest]
	Brands       *resource.Service[masterdata.Brand, masterdata.BrandRequest]
	Customers    *resource.Service[masterdata.Customer, masterdata.CustomerRequest]
	Agreements   *resource.Service[billing.Agreement, billing.AgreementRequest]
	Invoices     *resource.Service[billing.Invoice, billing.InvoiceRequest]

	screens   map[string]listview.Screen
	resources map[string]resource.Ops
	notifier  Notifier
	logger    *zap.Logger

	mu       sync.Mutex
	lastSeen time.Time
}

// New assembles a workspace over the namespaced store of id.
func New(id string, deps Deps) *Workspace {
	logger := deps.Logger.With(zap.String("workspace_id", id))
	w := &Workspace{
		ID:        id,
		Store:     deps.Backend.Scope(id),
		Cache:     querycache.New(deps.Config.QueryStaleTime),
		screens:   make(map[string]listview.Screen),
		resources: make(map[string]resource.Ops),
		notifier:  deps.Notifier,
		logger:    logger,
		lastSeen:  time.Now(),
	}

	w.Nav = NewNavigator(func(path string) {
		w.push(wstypes.NewMessage(wstypes.EventTypeNavigate, wstypes.NavigateData{Path: path}))
	})
	w.Session = session.NewManager(w.Store, w.Nav, logger)
	w.Company = scope.NewCompany(w.Store, logger)

	opts := []apiclient.Option{
		apiclient.WithUnauthorizedHook(func(ctx context.Context) {
			w.Session.Expire(ctx)
			w.Cache.Clear()
		}),
	}
	if deps.HTTPClient != nil {
		opts = append(opts, apiclient.WithHTTPClient(deps.HTTPClient))
	}
	if deps.Limiter != nil {
		opts = append(opts, apiclient.WithLimiter(deps.Limiter))
	}
	w.API = apiclient.New(deps.Config.APIBaseURL, w.Session, logger, opts...)

	w.Auth = authsvc.NewAuthService(w.API, w.Session, w.Cache, logger)
	w.Users = usersvc.NewUserService(w.API, w.Session, w.Store, w.Cache, logger)
	w.Roles = rolesvc.NewRoleService(w.API, w.Cache, logger)
	w.Tickets = ticketsvc.NewTicketService(w.API, w.Cache, logger)

	w.Companies = resource.NewService[masterdata.Company, masterdata.CompanyRequest]("companies", "/Company", w.API, w.Cache, logger)
	w.Machines = resource.NewService[masterdata.Machine, masterdata.MachineRequest]("machines", "/Machine", w.API, w.Cache, logger)
	w.BankAccounts = resource.NewService[masterdata.BankAccount, masterdata.BankAccountRequest]("bank-accounts", "/BankAccount", w.API, w.Cache, logger)
	w.Brands = resource.NewService[masterdata.Brand, masterdata.BrandRequest]("brands", "/Brand", w.API, w.Cache, logger)
	w.Customers = resource.NewService[masterdata.Customer, masterdata.CustomerRequest]("customers", "/Customer", w.API, w.Cache, logger)
	w.Agreements = resource.NewService[billing.Agreement, billing.AgreementRequest]("agreements", "/Agreement", w.API, w.Cache, logger)
	w.Invoices = resource.NewService[billing.Invoice, billing.InvoiceRequest]("invoices", "/Invoice", w.API, w.Cache, logger)

	w.Dashboard = dashboardsvc.NewDashboardService([]dashboardsvc.TileSpec{
		{Key: "agreements", Title: "Agreements", Section: dashboard.SectionTransactions, Scoped: true, Counter: w.Agreements},
		{Key: "invoices", Title: "Invoices", Section: dashboard.SectionTransactions, Scoped: true, Counter: w.Invoices},
		{Key: "bank-accounts", Title: "Bank Accounts", Section: dashboard.SectionMasterData, Scoped: true, Counter: w.BankAccounts},
		{Key: "customers", Title: "Customers", Section: dashboard.SectionMasterData, Scoped: true, Counter: w.Customers},
		{Key: "brands", Title: "Brands", Section: dashboard.SectionMasterData, Scoped: true, Counter: w.Brands},
		{Key: "machines", Title: "Machines", Section: dashboard.SectionMasterData, Scoped: true, Counter: w.Machines},
		{Key: "companies", Title: "Companies", Section: dashboard.SectionSettings, Counter: w.Companies},
		{Key: "users", Title: "Users", Section: dashboard.SectionSettings, Counter: w.Users},
	}, w.Company, logger)

	w.bindResources()
	w.buildScreens(listview.Screens(deps.Config.DefaultPageSize, deps.Config.SearchDebounce))
	w.wireEvents()

	return w
}

func (w *Workspace) bindResources() {
	ops := []resource.Ops{
		resource.Bind[role.Role, role.RoleRequest](rolesvc.Entity, w.Roles.GetByID, w.Roles.Create, w.Roles.Update, w.Roles.Delete),
		resource.Bind[user.User, user.UserRequest](usersvc.Entity, w.Users.GetByID, w.Users.Create, w.Users.Update, w.Users.Delete),
		resource.BindService(w.Tickets.Service),
		resource.BindService(w.Companies),
		resource.BindService(w.Machines),
		resource.BindService(w.BankAccounts),
		resource.BindService(w.Brands),
		resource.BindService(w.Customers),
		resource.BindService(w.Agreements),
		resource.BindService(w.Invoices),
	}
	for _, o := range ops {
		w.resources[o.Entity()] = o
	}
}

func (w *Workspace) buildScreens(cfgs map[string]listview.Config) {
	addScreen(w, cfgs[rolesvc.Entity], w.Roles.List)
	addScreen(w, cfgs[usersvc.Entity], w.Users.List)
	addScreen(w, cfgs[ticketsvc.Entity], w.Tickets.List)
	addScreen(w, cfgs["companies"], w.Companies.List)
	addScreen(w, cfgs["machines"], w.Machines.List)
	addScreen(w, cfgs["bank-accounts"], w.BankAccounts.List)
	addScreen(w, cfgs["brands"], w.Brands.List)
	addScreen(w, cfgs["customers"], w.Customers.List)
	addScreen(w, cfgs["agreements"], w.Agreements.List)
	addScreen(w, cfgs["invoices"], w.Invoices.List)
}

func addScreen[T any](w *Workspace, cfg listview.Config, fetch func(ctx context.Context, q paging.Query) (paging.Result[T], error)) {
	if cfg.Entity == "" {
		return
	}
	screen := listview.NewController[T](cfg, fetch, w.Company, w.logger)
	screen.OnRefresh(func(view interface{}, err error) {
		if err != nil {
			w.push(wstypes.NewMessage(wstypes.EventTypeError, wstypes.ErrorData{
				Code:    "list_fetch_failed",
				Message: apiclient.MessageOf(err, "Failed to load"),
			}))
		}
		w.push(wstypes.NewMessage(wstypes.EventTypeListView, view))
	})
	w.screens[cfg.Entity] = screen
}

func (w *Workspace) wireEvents() {
	w.Session.OnTransition(func(from, to session.State) {
		w.push(wstypes.NewMessage(wstypes.EventTypeSessionChanged, wstypes.SessionEventData{
			From: string(from),
			To:   string(to),
		}))
		if to == session.StateExpired {
			w.push(wstypes.NewMessage(wstypes.EventTypeSessionExpired, nil))
			w.push(wstypes.Toast("warning", "Your session has expired. Please sign in again."))
		}
	})

	w.Company.OnChange(func(id string) {
		w.push(wstypes.NewMessage(wstypes.EventTypeCompanyChanged, wstypes.CompanyChangedData{CompanyID: id}))
	})
}

// Init restores the session and company scope from the store.
func (w *Workspace) Init(ctx context.Context) (session.State, error) {
	state, err := w.Session.Init(ctx)
	if err != nil {
		return state, err
	}
	if _, err := w.Company.Load(ctx); err != nil {
		return state, err
	}
	return state, nil
}

// Screen returns the list screen of entity.
func (w *Workspace) Screen(entity string) (listview.Screen, bool) {
	s, ok := w.screens[entity]
	return s, ok
}

// Resource returns the operations of entity.
func (w *Workspace) Resource(entity string) (resource.Ops, bool) {
	o, ok := w.resources[entity]
	return o, ok
}

// Push sends msg to the browser connections of this workspace.
func (w *Workspace) Push(msg *wstypes.WSMessage) {
	w.push(msg)
}

func (w *Workspace) push(msg *wstypes.WSMessage) {
	if w.notifier == nil {
		return
	}
	w.notifier.Push(w.ID, msg)
}

func (w *Workspace) touch(now time.Time) {
	w.mu.Lock()
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) idleSince(now time.Time) time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return now.Sub(w.lastSeen)
}

// Close stops pending debounced searches.
func (w *Workspace) Close() {
	for _, s := range w.screens {
		s.Close()
	}
}
