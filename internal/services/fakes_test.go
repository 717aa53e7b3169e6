package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/geevapp/geev/internal/models"
	"github.com/geevapp/geev/internal/repositories"
)

// In-memory repositories for service tests. They mirror the mongodb
// implementations' contract: absent records surface as mongo.ErrNoDocuments
// and uniqueness violations as duplicate-key write errors.

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
}

type fakeGiveawayRepo struct {
	seq       uint64
	giveaways map[uint64]*models.Giveaway
}

func newFakeGiveawayRepo() *fakeGiveawayRepo {
	return &fakeGiveawayRepo{giveaways: make(map[uint64]*models.Giveaway)}
}

func (r *fakeGiveawayRepo) NextID(ctx context.Context) (uint64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeGiveawayRepo) Create(ctx context.Context, giveaway *models.Giveaway) error {
	copied := *giveaway
	r.giveaways[giveaway.ID] = &copied
	return nil
}

func (r *fakeGiveawayRepo) FindByID(ctx context.Context, id uint64) (*models.Giveaway, error) {
	giveaway, ok := r.giveaways[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *giveaway
	return &copied, nil
}

func (r *fakeGiveawayRepo) Update(ctx context.Context, giveaway *models.Giveaway) error {
	if _, ok := r.giveaways[giveaway.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *giveaway
	r.giveaways[giveaway.ID] = &copied
	return nil
}

func (r *fakeGiveawayRepo) FindByStatus(ctx context.Context, status models.GiveawayStatus, page, limit int) ([]*models.Giveaway, error) {
	var out []*models.Giveaway
	for _, g := range r.giveaways {
		if g.Status == status {
			copied := *g
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeGiveawayRepo) FindAll(ctx context.Context, page, limit int) ([]*models.Giveaway, error) {
	var out []*models.Giveaway
	for _, g := range r.giveaways {
		copied := *g
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeParticipantRepo struct {
	entries []*models.ParticipantEntry
}

func newFakeParticipantRepo() *fakeParticipantRepo {
	return &fakeParticipantRepo{}
}

func (r *fakeParticipantRepo) HasEntered(ctx context.Context, giveawayID uint64, account string) (bool, error) {
	for _, e := range r.entries {
		if e.GiveawayID == giveawayID && e.Account == account {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeParticipantRepo) Append(ctx context.Context, entry *models.ParticipantEntry) error {
	for _, e := range r.entries {
		if e.GiveawayID == entry.GiveawayID && (e.Account == entry.Account || e.Index == entry.Index) {
			return duplicateKeyError()
		}
	}
	copied := *entry
	r.entries = append(r.entries, &copied)
	return nil
}

func (r *fakeParticipantRepo) FindByIndex(ctx context.Context, giveawayID uint64, index uint32) (*models.ParticipantEntry, error) {
	for _, e := range r.entries {
		if e.GiveawayID == giveawayID && e.Index == index {
			copied := *e
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) FindByGiveaway(ctx context.Context, giveawayID uint64, page, limit int) ([]*models.ParticipantEntry, error) {
	var out []*models.ParticipantEntry
	for _, e := range r.entries {
		if e.GiveawayID == giveawayID {
			copied := *e
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out, nil
}

type fakeFeeRepo struct {
	balances map[string]int64
}

func newFakeFeeRepo() *fakeFeeRepo {
	return &fakeFeeRepo{balances: make(map[string]int64)}
}

func (r *fakeFeeRepo) Accumulated(ctx context.Context, token string) (int64, error) {
	return r.balances[token], nil
}

func (r *fakeFeeRepo) Set(ctx context.Context, token string, amount int64) error {
	r.balances[token] = amount
	return nil
}

type fakeConfigRepo struct {
	admin     string
	adminSet  bool
	feeBps    int64
	feeBpsSet bool
	paused    bool
	allowed   map[string]bool
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{allowed: make(map[string]bool)}
}

func (r *fakeConfigRepo) Admin(ctx context.Context) (string, error) {
	if !r.adminSet {
		return "", mongo.ErrNoDocuments
	}
	return r.admin, nil
}

func (r *fakeConfigRepo) SetAdmin(ctx context.Context, address string) error {
	if r.adminSet {
		return duplicateKeyError()
	}
	r.admin = address
	r.adminSet = true
	return nil
}

func (r *fakeConfigRepo) FeeBps(ctx context.Context) (int64, error) {
	if !r.feeBpsSet {
		return 0, mongo.ErrNoDocuments
	}
	return r.feeBps, nil
}

func (r *fakeConfigRepo) SetFeeBps(ctx context.Context, bps int64) error {
	r.feeBps = bps
	r.feeBpsSet = true
	return nil
}

func (r *fakeConfigRepo) Paused(ctx context.Context) (bool, error) {
	return r.paused, nil
}

func (r *fakeConfigRepo) SetPaused(ctx context.Context, paused bool) error {
	r.paused = paused
	return nil
}

func (r *fakeConfigRepo) IsTokenAllowed(ctx context.Context, token string) (bool, error) {
	return r.allowed[token], nil
}

func (r *fakeConfigRepo) AllowToken(ctx context.Context, token string) error {
	r.allowed[token] = true
	return nil
}

type fakeHelpRequestRepo struct {
	seq      uint64
	requests map[uint64]*models.HelpRequest
}

func newFakeHelpRequestRepo() *fakeHelpRequestRepo {
	return &fakeHelpRequestRepo{requests: make(map[uint64]*models.HelpRequest)}
}

func (r *fakeHelpRequestRepo) NextID(ctx context.Context) (uint64, error) {
	r.seq++
	return r.seq, nil
}

func (r *fakeHelpRequestRepo) Create(ctx context.Context, request *models.HelpRequest) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeHelpRequestRepo) FindByID(ctx context.Context, id uint64) (*models.HelpRequest, error) {
	request, ok := r.requests[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *request
	return &copied, nil
}

func (r *fakeHelpRequestRepo) Update(ctx context.Context, request *models.HelpRequest) error {
	if _, ok := r.requests[request.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *fakeHelpRequestRepo) FindAll(ctx context.Context, page, limit int) ([]*models.HelpRequest, error) {
	var out []*models.HelpRequest
	for _, req := range r.requests {
		copied := *req
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type contributionKey struct {
	requestID uint64
	donor     string
}

type fakeContributionRepo struct {
	contributions map[contributionKey]int64
}

func newFakeContributionRepo() *fakeContributionRepo {
	return &fakeContributionRepo{contributions: make(map[contributionKey]int64)}
}

func (r *fakeContributionRepo) Find(ctx context.Context, requestID uint64, donor string) (*models.Contribution, error) {
	amount, ok := r.contributions[contributionKey{requestID, donor}]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &models.Contribution{RequestID: requestID, Donor: donor, Amount: amount}, nil
}

func (r *fakeContributionRepo) Upsert(ctx context.Context, contribution *models.Contribution) error {
	r.contributions[contributionKey{contribution.RequestID, contribution.Donor}] = contribution.Amount
	return nil
}

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
}

func (r *fakeProfileRepo) FindByAccount(ctx context.Context, account string) (*models.Profile, error) {
	profile, ok := r.profiles[account]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *profile
	return &copied, nil
}

func (r *fakeProfileRepo) FindByUsername(ctx context.Context, username string) (*models.Profile, error) {
	for _, p := range r.profiles {
		if p.Username == username {
			copied := *p
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeProfileRepo) Upsert(ctx context.Context, profile *models.Profile) error {
	for _, p := range r.profiles {
		if p.Username == profile.Username && p.Account != profile.Account {
			return duplicateKeyError()
		}
	}
	copied := *profile
	r.profiles[profile.Account] = &copied
	return nil
}

type fakeAccountRepo struct {
	accounts map[string]*models.Account
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*models.Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *models.Account) error {
	if _, ok := r.accounts[account.Address]; ok {
		return duplicateKeyError()
	}
	copied := *account
	r.accounts[account.Address] = &copied
	return nil
}

func (r *fakeAccountRepo) FindByAddress(ctx context.Context, address string) (*models.Account, error) {
	account, ok := r.accounts[address]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *account
	return &copied, nil
}

type fakeEventRepo struct {
	events []*models.Event
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{}
}

func (r *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	copied := *event
	r.events = append(r.events, &copied)
	return nil
}

func (r *fakeEventRepo) FindRecent(ctx context.Context, page, limit int) ([]*models.Event, error) {
	out := make([]*models.Event, 0, len(r.events))
	for i := len(r.events) - 1; i >= 0; i-- {
		copied := *r.events[i]
		out = append(out, &copied)
	}
	return out, nil
}

func (r *fakeEventRepo) types() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

// transferCall records one ledger movement observed by the fake transferer.
type transferCall struct {
	Token  string
	From   string
	To     string
	Amount int64
}

type fakeTransferer struct {
	escrow    string
	transfers []transferCall
	failWith  error
}

func newFakeTransferer() *fakeTransferer {
	return &fakeTransferer{escrow: "ESCROW"}
}

func (t *fakeTransferer) Transfer(ctx context.Context, token, from, to string, amount int64) error {
	if t.failWith != nil {
		return t.failWith
	}
	t.transfers = append(t.transfers, transferCall{Token: token, From: from, To: to, Amount: amount})
	return nil
}

func (t *fakeTransferer) EscrowAccount() string {
	return t.escrow
}

// fixedDrawSource returns a predetermined value, making winner selection
// deterministic.
type fixedDrawSource struct {
	value uint64
}

func (d *fixedDrawSource) Uint64() (uint64, error) {
	return d.value, nil
}

// Interface conformance for the fakes.
var (
	_ repositories.GiveawayRepository     = (*fakeGiveawayRepo)(nil)
	_ repositories.ParticipantRepository  = (*fakeParticipantRepo)(nil)
	_ repositories.FeeRepository          = (*fakeFeeRepo)(nil)
	_ repositories.ConfigRepository       = (*fakeConfigRepo)(nil)
	_ repositories.HelpRequestRepository  = (*fakeHelpRequestRepo)(nil)
	_ repositories.ContributionRepository = (*fakeContributionRepo)(nil)
	_ repositories.ProfileRepository      = (*fakeProfileRepo)(nil)
	_ repositories.AccountRepository      = (*fakeAccountRepo)(nil)
	_ repositories.EventRepository        = (*fakeEventRepo)(nil)
	_ TokenTransferer                     = (*fakeTransferer)(nil)
	_ DrawSource                          = (*fixedDrawSource)(nil)
)
