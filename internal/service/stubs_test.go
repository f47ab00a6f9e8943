package service

// In-memory repository stubs shared by the service tests. They mimic the
// query semantics of the GORM implementations closely enough for the service
// layer: not-found surfaces as gorm.ErrRecordNotFound and finders return
// copies so a test only observes what was actually persisted.

import (
	"context"
	"sort"
	"time"

	"github.com/sofacai/mundo-prendarios-back-sub000/internal/dto"
	"github.com/sofacai/mundo-prendarios-back-sub000/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ── UsuarioRepository ─────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario), nextID: 1}
}

func (r *stubUsuarioRepo) agregar(u model.Usuario) *model.Usuario {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}
	r.usuarios[u.ID] = &u
	return &u
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	u.ID = r.nextID
	r.nextID++
	copia := *u
	r.usuarios[u.ID] = &copia
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *u
	return &copia, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			copia := *u
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if u.Activo {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	copia := *u
	r.usuarios[u.ID] = &copia
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uint) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = false
	}
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uint) error {
	if u, ok := r.usuarios[id]; ok {
		u.Activo = true
	}
	return nil
}

func (r *stubUsuarioRepo) RegistrarOperacion(_ context.Context, id uint, fecha time.Time) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.CantidadOperaciones++
	u.FechaUltimaOperacion = &fecha
	return nil
}

// ── CanalRepository ───────────────────────────────────────────────────────────

type stubCanalRepo struct {
	canales    map[uint]*model.Canal
	subcanales map[uint]*model.Subcanal
}

func newStubCanalRepo() *stubCanalRepo {
	return &stubCanalRepo{
		canales:    make(map[uint]*model.Canal),
		subcanales: make(map[uint]*model.Subcanal),
	}
}

func (r *stubCanalRepo) Create(_ context.Context, c *model.Canal) error {
	if c.ID == 0 {
		c.ID = uint(len(r.canales) + 1)
	}
	copia := *c
	r.canales[c.ID] = &copia
	return nil
}

func (r *stubCanalRepo) FindByID(_ context.Context, id uint) (*model.Canal, error) {
	c, ok := r.canales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *stubCanalRepo) List(_ context.Context) ([]model.Canal, error) {
	var out []model.Canal
	for _, c := range r.canales {
		if c.Activo {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCanalRepo) Update(_ context.Context, c *model.Canal) error {
	copia := *c
	r.canales[c.ID] = &copia
	return nil
}

func (r *stubCanalRepo) SoftDelete(_ context.Context, id uint) error {
	if c, ok := r.canales[id]; ok {
		c.Activo = false
	}
	return nil
}

func (r *stubCanalRepo) CreateSubcanal(_ context.Context, s *model.Subcanal) error {
	if s.ID == 0 {
		s.ID = uint(len(r.subcanales) + 1)
	}
	copia := *s
	r.subcanales[s.ID] = &copia
	return nil
}

func (r *stubCanalRepo) FindSubcanalByID(_ context.Context, id uint) (*model.Subcanal, error) {
	s, ok := r.subcanales[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *s
	return &copia, nil
}

func (r *stubCanalRepo) ListSubcanales(_ context.Context, canalID uint) ([]model.Subcanal, error) {
	var out []model.Subcanal
	for _, s := range r.subcanales {
		if s.Activo && (canalID == 0 || s.CanalID == canalID) {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (r *stubCanalRepo) UpdateSubcanal(_ context.Context, s *model.Subcanal) error {
	copia := *s
	r.subcanales[s.ID] = &copia
	return nil
}

func (r *stubCanalRepo) FindPrimerSubcanalAdmin(_ context.Context, adminID uint) (*model.Subcanal, error) {
	ids := make([]uint, 0, len(r.subcanales))
	for id := range r.subcanales {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s := r.subcanales[id]
		if s.Activo && s.AdminCanalID != nil && *s.AdminCanalID == adminID {
			copia := *s
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── ClienteRepository ─────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uint]*model.Cliente
	nextID   uint
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uint]*model.Cliente), nextID: 1}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	c.ID = r.nextID
	r.nextID++
	copia := *c
	r.clientes[c.ID] = &copia
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uint) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *c
	return &copia, nil
}

func (r *stubClienteRepo) FindByDni(_ context.Context, dni string) (*model.Cliente, error) {
	for _, c := range r.clientes {
		if c.Dni == dni {
			copia := *c
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubClienteRepo) List(_ context.Context, canalID uint) ([]model.Cliente, error) {
	var out []model.Cliente
	for _, c := range r.clientes {
		if canalID == 0 || (c.CanalID != nil && *c.CanalID == canalID) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	copia := *c
	r.clientes[c.ID] = &copia
	return nil
}

// ── GastoRepository ───────────────────────────────────────────────────────────

type stubGastoRepo struct {
	gastos []model.Gasto
}

func (r *stubGastoRepo) Create(_ context.Context, g *model.Gasto) error {
	g.ID = uint(len(r.gastos) + 1)
	r.gastos = append(r.gastos, *g)
	return nil
}

func (r *stubGastoRepo) ListBySubcanal(_ context.Context, subcanalID uint) ([]model.Gasto, error) {
	var out []model.Gasto
	for _, g := range r.gastos {
		if g.SubcanalID == subcanalID && g.Activo {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGastoRepo) SoftDelete(_ context.Context, id uint) error {
	for i := range r.gastos {
		if r.gastos[i].ID == id {
			r.gastos[i].Activo = false
		}
	}
	return nil
}

// ── PlanRepository ────────────────────────────────────────────────────────────

type stubPlanRepo struct {
	planes map[uint]*model.Plan
	links  []model.PlanCanal
	tasas  []model.PlanTasa
	nextID uint
}

func newStubPlanRepo() *stubPlanRepo {
	return &stubPlanRepo{planes: make(map[uint]*model.Plan), nextID: 1}
}

func (r *stubPlanRepo) Create(_ context.Context, p *model.Plan) error {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	copia := *p
	r.planes[p.ID] = &copia
	return nil
}

func (r *stubPlanRepo) FindByID(_ context.Context, id uint) (*model.Plan, error) {
	p, ok := r.planes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *p
	return &copia, nil
}

func (r *stubPlanRepo) List(_ context.Context, incluirInactivos bool) ([]model.Plan, error) {
	ids := r.idsOrdenados()
	var out []model.Plan
	for _, id := range ids {
		if incluirInactivos || r.planes[id].Activo {
			out = append(out, *r.planes[id])
		}
	}
	return out, nil
}

func (r *stubPlanRepo) Update(_ context.Context, p *model.Plan) error {
	copia := *p
	r.planes[p.ID] = &copia
	return nil
}

func (r *stubPlanRepo) SetActivo(_ context.Context, id uint, activo bool) error {
	if p, ok := r.planes[id]; ok {
		p.Activo = activo
	}
	return nil
}

func (r *stubPlanRepo) FindVigentes(_ context.Context, canalID uint, monto decimal.Decimal, plazo int, ref time.Time) ([]model.Plan, error) {
	var out []model.Plan
	for _, id := range r.idsOrdenados() {
		p := r.planes[id]
		if !p.Activo || !p.VigenteAl(ref) || !p.AplicaCuota(plazo) {
			continue
		}
		if monto.LessThan(p.MontoMinimo) || monto.GreaterThan(p.MontoMaximo) {
			continue
		}
		vinculado := false
		for _, l := range r.links {
			if l.PlanID == p.ID && l.CanalID == canalID && l.Activo {
				vinculado = true
			}
		}
		if vinculado {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) LinkCanal(_ context.Context, pc *model.PlanCanal) error {
	r.links = append(r.links, *pc)
	return nil
}

func (r *stubPlanRepo) SetCanalActivo(_ context.Context, planID, canalID uint, activo bool) error {
	for i := range r.links {
		if r.links[i].PlanID == planID && r.links[i].CanalID == canalID {
			r.links[i].Activo = activo
		}
	}
	return nil
}

func (r *stubPlanRepo) CreateTasa(_ context.Context, t *model.PlanTasa) error {
	t.ID = uint(len(r.tasas) + 1)
	r.tasas = append(r.tasas, *t)
	return nil
}

func (r *stubPlanRepo) FindTasa(_ context.Context, planID uint, plazo int) (*model.PlanTasa, error) {
	for i := range r.tasas {
		if r.tasas[i].PlanID == planID && r.tasas[i].Plazo == plazo {
			copia := r.tasas[i]
			return &copia, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPlanRepo) ListTasas(_ context.Context, planID uint) ([]model.PlanTasa, error) {
	var out []model.PlanTasa
	for _, t := range r.tasas {
		if t.PlanID == planID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *stubPlanRepo) idsOrdenados() []uint {
	ids := make([]uint, 0, len(r.planes))
	for id := range r.planes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── ReglaCotizacionRepository ─────────────────────────────────────────────────

type stubReglaRepo struct {
	reglas map[uint]*model.ReglaCotizacion
	nextID uint
}

func newStubReglaRepo() *stubReglaRepo {
	return &stubReglaRepo{reglas: make(map[uint]*model.ReglaCotizacion), nextID: 1}
}

func (r *stubReglaRepo) Create(_ context.Context, regla *model.ReglaCotizacion) error {
	if regla.ID == 0 {
		regla.ID = r.nextID
		r.nextID++
	} else if regla.ID >= r.nextID {
		r.nextID = regla.ID + 1
	}
	copia := *regla
	r.reglas[regla.ID] = &copia
	return nil
}

func (r *stubReglaRepo) FindByID(_ context.Context, id uint) (*model.ReglaCotizacion, error) {
	regla, ok := r.reglas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *regla
	return &copia, nil
}

func (r *stubReglaRepo) List(_ context.Context, incluirInactivos bool) ([]model.ReglaCotizacion, error) {
	var out []model.ReglaCotizacion
	for _, id := range r.idsOrdenados() {
		if incluirInactivos || r.reglas[id].Activo {
			out = append(out, *r.reglas[id])
		}
	}
	return out, nil
}

func (r *stubReglaRepo) Update(_ context.Context, regla *model.ReglaCotizacion) error {
	copia := *regla
	r.reglas[regla.ID] = &copia
	return nil
}

func (r *stubReglaRepo) SetActivo(_ context.Context, id uint, activo bool) error {
	if regla, ok := r.reglas[id]; ok {
		regla.Activo = activo
	}
	return nil
}

func (r *stubReglaRepo) FindVigentes(_ context.Context, monto decimal.Decimal, plazo int, ref time.Time) ([]model.ReglaCotizacion, error) {
	var out []model.ReglaCotizacion
	for _, id := range r.idsOrdenados() {
		regla := r.reglas[id]
		if !regla.Activo || !regla.VigenteAl(ref) || !regla.AplicaCuota(plazo) {
			continue
		}
		if monto.LessThan(regla.MontoMinimo) || monto.GreaterThan(regla.MontoMaximo) {
			continue
		}
		out = append(out, *regla)
	}
	return out, nil
}

func (r *stubReglaRepo) idsOrdenados() []uint {
	ids := make([]uint, 0, len(r.reglas))
	for id := range r.reglas {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ── OperacionRepository ───────────────────────────────────────────────────────

type stubOperacionRepo struct {
	operaciones map[uint]*model.Operacion
	nextID      uint
}

func newStubOperacionRepo() *stubOperacionRepo {
	return &stubOperacionRepo{operaciones: make(map[uint]*model.Operacion), nextID: 1}
}

func (r *stubOperacionRepo) guardar(o model.Operacion) *model.Operacion {
	if o.ID == 0 {
		o.ID = r.nextID
		r.nextID++
	} else if o.ID >= r.nextID {
		r.nextID = o.ID + 1
	}
	r.operaciones[o.ID] = &o
	return &o
}

func (r *stubOperacionRepo) Create(_ context.Context, o *model.Operacion) error {
	o.ID = r.nextID
	r.nextID++
	o.CreatedAt = time.Now()
	copia := *o
	r.operaciones[o.ID] = &copia
	return nil
}

func (r *stubOperacionRepo) FindByID(_ context.Context, id uint) (*model.Operacion, error) {
	o, ok := r.operaciones[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copia := *o
	return &copia, nil
}

func (r *stubOperacionRepo) Update(_ context.Context, o *model.Operacion) error {
	copia := *o
	r.operaciones[o.ID] = &copia
	return nil
}

func (r *stubOperacionRepo) List(_ context.Context, filter dto.OperacionFilter, vendedorID uint) ([]model.Operacion, int64, error) {
	var out []model.Operacion
	for _, o := range r.operaciones {
		if filter.Estado != "" && o.Estado != filter.Estado {
			continue
		}
		if filter.Dashboard != "" && o.EstadoDashboard != filter.Dashboard {
			continue
		}
		if vendedorID != 0 && (o.VendedorID == nil || *o.VendedorID != vendedorID) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *stubOperacionRepo) ListCreadasDesde(_ context.Context, ref time.Time, limit int) ([]model.Operacion, error) {
	var out []model.Operacion
	for _, o := range r.operaciones {
		if o.KommoLeadID == nil && !o.CreatedAt.Before(ref) {
			out = append(out, *o)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *stubOperacionRepo) MarcarSincronizada(_ context.Context, id uint, leadID int64) error {
	o, ok := r.operaciones[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.KommoLeadID = &leadID
	return nil
}

func (r *stubOperacionRepo) DB() *gorm.DB { return nil }
