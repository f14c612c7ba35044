package ruleset

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog subdirectory names under a content root.
const (
	WeaponsDir  = "weapons"
	TargetsDir  = "targets"
	ActorsDir   = "actors"
	ProfilesDir = "profiles"
	AttacksDir  = "attacks"
)

type validator interface {
	Validate() error
}

// loadDefs reads every YAML file in dir as one T and validates it.
func loadDefs[T any, P interface {
	*T
	validator
}](dir, kind string) ([]*T, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	defs := make([]*T, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		var def T
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, fmt.Errorf("parsing %s file %s: %w", kind, path, decodeError(path, err))
		}
		if err := P(&def).Validate(); err != nil {
			return nil, fmt.Errorf("invalid %s in %s: %w", kind, path, err)
		}
		defs = append(defs, &def)
	}
	return defs, nil
}

// decodeError converts a yaml.Unmarshal failure on path into ConfigErrors.
//
// Postcondition: the result matches ErrInvalidConfig.
func decodeError(path string, err error) error {
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		if cfgErr.Source == "" {
			cfgErr.Source = path
		}
		return cfgErr
	}
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) && len(typeErr.Errors) > 0 {
		errs := make([]error, 0, len(typeErr.Errors))
		for _, msg := range typeErr.Errors {
			field, reason, ok := strings.Cut(msg, ": ")
			if !ok {
				field, reason = "yaml", msg
			}
			errs = append(errs, &ConfigError{Source: path, Field: field, Reason: reason})
		}
		return errors.Join(errs...)
	}
	return &ConfigError{Source: path, Field: "yaml", Reason: err.Error()}
}

// LoadWeapons reads all .yaml files in dir and parses each as a WeaponDef.
//
// Precondition: dir must be a readable directory path.
// Postcondition: Returns all valid weapons (may be empty slice) or a non-nil error.
func LoadWeapons(dir string) ([]*WeaponDef, error) {
	return loadDefs[WeaponDef](dir, "weapon")
}

// LoadTargets reads all .yaml files in dir and parses each as a TargetDef.
func LoadTargets(dir string) ([]*TargetDef, error) {
	return loadDefs[TargetDef](dir, "target")
}

// LoadActors reads all .yaml files in dir and parses each as an ActorDef.
func LoadActors(dir string) ([]*ActorDef, error) {
	return loadDefs[ActorDef](dir, "actor")
}

// LoadDefenseProfiles reads all .yaml files in dir and parses each as a DefenseProfileDef.
func LoadDefenseProfiles(dir string) ([]*DefenseProfileDef, error) {
	return loadDefs[DefenseProfileDef](dir, "defense profile")
}

// LoadAttacks reads all .yaml files in dir and parses each as an AttackDef.
func LoadAttacks(dir string) ([]*AttackDef, error) {
	return loadDefs[AttackDef](dir, "attack")
}

func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
			paths = append(paths, filepath.Join(dir, name))
		}
	}
	return paths, nil
}

// Catalog indexes every loaded definition by ID.
type Catalog struct {
	weapons  map[string]*WeaponDef
	targets  map[string]*TargetDef
	actors   map[string]*ActorDef
	profiles map[string]*DefenseProfileDef
	attacks  map[string]*AttackDef
}

// NewCatalog returns an empty Catalog.
//
// Postcondition: Returns a non-nil *Catalog ready to accept registrations.
func NewCatalog() *Catalog {
	return &Catalog{
		weapons:  make(map[string]*WeaponDef),
		targets:  make(map[string]*TargetDef),
		actors:   make(map[string]*ActorDef),
		profiles: make(map[string]*DefenseProfileDef),
		attacks:  make(map[string]*AttackDef),
	}
}

// LoadCatalog loads the weapons, targets, actors, profiles, and attacks
// subdirectories of root. A missing subdirectory contributes nothing.
//
// Postcondition: Returns a Catalog of valid, uniquely identified definitions or a non-nil error.
func LoadCatalog(root string) (*Catalog, error) {
	c := NewCatalog()
	var errs []error
	load := func(sub string, fn func(dir string) error) {
		dir := filepath.Join(root, sub)
		if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
			return
		}
		errs = append(errs, fn(dir))
	}

	load(WeaponsDir, func(dir string) error {
		defs, err := LoadWeapons(dir)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := c.AddWeapon(d); err != nil {
				return err
			}
		}
		return nil
	})
	load(TargetsDir, func(dir string) error {
		defs, err := LoadTargets(dir)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := c.AddTarget(d); err != nil {
				return err
			}
		}
		return nil
	})
	load(ActorsDir, func(dir string) error {
		defs, err := LoadActors(dir)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := c.AddActor(d); err != nil {
				return err
			}
		}
		return nil
	})
	load(ProfilesDir, func(dir string) error {
		defs, err := LoadDefenseProfiles(dir)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := c.AddProfile(d); err != nil {
				return err
			}
		}
		return nil
	})
	load(AttacksDir, func(dir string) error {
		defs, err := LoadAttacks(dir)
		if err != nil {
			return err
		}
		for _, d := range defs {
			if err := c.AddAttack(d); err != nil {
				return err
			}
		}
		return nil
	})

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", root, err)
	}
	return c, nil
}

func add[T validator](m map[string]T, kind, id string, def T) error {
	if err := def.Validate(); err != nil {
		return err
	}
	if _, dup := m[id]; dup {
		return &ConfigError{Source: id, Field: "id", Reason: "duplicate " + kind + " ID"}
	}
	m[id] = def
	return nil
}

// AddWeapon validates and registers w.
//
// Postcondition: on success w is retrievable via Weapon(w.ID); duplicate IDs are rejected.
func (c *Catalog) AddWeapon(w *WeaponDef) error { return add(c.weapons, "weapon", w.ID, w) }

// AddTarget validates and registers t.
func (c *Catalog) AddTarget(t *TargetDef) error { return add(c.targets, "target", t.ID, t) }

// AddActor validates and registers a.
func (c *Catalog) AddActor(a *ActorDef) error { return add(c.actors, "actor", a.ID, a) }

// AddProfile validates and registers p.
func (c *Catalog) AddProfile(p *DefenseProfileDef) error {
	return add(c.profiles, "defense profile", p.ID, p)
}

// AddAttack validates and registers a.
func (c *Catalog) AddAttack(a *AttackDef) error { return add(c.attacks, "attack", a.ID, a) }

// Weapon returns the weapon with the given ID, if registered.
func (c *Catalog) Weapon(id string) (*WeaponDef, bool) {
	w, ok := c.weapons[id]
	return w, ok
}

// Target returns the target with the given ID, if registered.
func (c *Catalog) Target(id string) (*TargetDef, bool) {
	t, ok := c.targets[id]
	return t, ok
}

// Actor returns the actor with the given ID, if registered.
func (c *Catalog) Actor(id string) (*ActorDef, bool) {
	a, ok := c.actors[id]
	return a, ok
}

// Profile returns the defense profile with the given ID, if registered.
func (c *Catalog) Profile(id string) (*DefenseProfileDef, bool) {
	p, ok := c.profiles[id]
	return p, ok
}

// Attack returns the attack with the given ID, if registered.
func (c *Catalog) Attack(id string) (*AttackDef, bool) {
	a, ok := c.attacks[id]
	return a, ok
}

// Counts returns the number of registered definitions per subdirectory name.
func (c *Catalog) Counts() map[string]int {
	return map[string]int{
		WeaponsDir:  len(c.weapons),
		TargetsDir:  len(c.targets),
		ActorsDir:   len(c.actors),
		ProfilesDir: len(c.profiles),
		AttacksDir:  len(c.attacks),
	}
}
