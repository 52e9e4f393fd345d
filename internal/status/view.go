// internal/status/view.go
package status

// View is a registry bound to one class.
type View struct {
	r *Registry
	c Class
}

// Class returns a view of r restricted to c. An invalid c is reported on
// every call made through the view.
func (r *Registry) Class(c Class) View { return View{r: r, c: c} }

func (r *Registry) Faults() View   { return r.Class(Fault) }
func (r *Registry) Warnings() View { return r.Class(Warning) }
func (r *Registry) Infos() View    { return r.Class(Info) }

func (v View) Set(id ID)                 { v.r.Set(v.c, id) }
func (v View) Clear(id ID)               { v.r.Clear(v.c, id) }
func (v View) Toggle(id ID)              { v.r.Toggle(v.c, id) }
func (v View) IsSet(id ID) bool          { return v.r.IsSet(v.c, id) }
func (v View) Any() bool                 { return v.r.Any(v.c) }
func (v View) ClearAll()                 { v.r.ClearAll(v.c) }
func (v View) Last() ID                  { return v.r.Last(v.c) }
func (v View) Snapshot(dst []uint16) int { return v.r.Snapshot(v.c, dst) }
