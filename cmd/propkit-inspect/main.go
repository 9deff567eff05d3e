// Package main provides the CLI entrypoint for propkit-inspect.
//
// propkit-inspect builds property models for a set of sample types and
// dumps what the resolver found: canonical property names, the accessor
// chosen for each side, and the declared value types. It doubles as a
// quick smoke check for a registry configuration file.
package main

import (
	"flag"
	"fmt"
	"os"
	"reflect"

	"github.com/davecgh/go-spew/spew"

	"propkit/registry"
)

type address struct {
	Street string
	City   string
}

type person struct {
	*address

	name string
	age  int
}

func (p *person) GetName() string     { return p.name }
func (p *person) SetName(name string) { p.name = name }
func (p *person) GetAge() int         { return p.age }
func (p *person) SetAge(age int)      { p.age = age }
func (p *person) IsAdult() bool       { return p.age >= 18 }

type propertyReport struct {
	Name       string
	Getter     string
	Setter     string
	GetterType string
	SetterType string
}

func main() {
	configPath := flag.String("config", "", "path to a registry config YAML")
	namesOnly := flag.Bool("names", false, "print property names only")
	flag.Parse()

	reg, err := buildRegistry(*configPath)
	if err != nil {
		fmt.Println("build registry:", err)
		os.Exit(1)
	}

	subjects := []reflect.Type{
		reflect.TypeFor[address](),
		reflect.TypeFor[*person](),
	}
	for _, t := range subjects {
		if err := inspect(reg, t, *namesOnly); err != nil {
			fmt.Println("inspect:", err)
			os.Exit(1)
		}
	}
}

func buildRegistry(configPath string) (*registry.Registry, error) {
	if configPath == "" {
		return registry.New(nil), nil
	}

	cfg, err := registry.LoadFile(configPath)
	if err != nil {
		return nil, err
	}

	return registry.NewFromConfig(cfg, nil), nil
}

func inspect(reg *registry.Registry, t reflect.Type, namesOnly bool) error {
	r, err := reg.Lookup(t)
	if err != nil {
		return err
	}

	fmt.Println("===", t, "===")
	fmt.Println("readable:", r.ReadableNames())
	fmt.Println("writable:", r.WritableNames())
	if namesOnly {
		return nil
	}

	reports := make([]propertyReport, 0, len(r.ReadableNames()))
	for _, name := range r.ReadableNames() {
		rep := propertyReport{Name: name}

		if inv, err := r.GetInvoker(name); err == nil {
			rep.Getter = inv.Kind().String() + " " + inv.Member()
		}
		if gt, err := r.GetterType(name); err == nil {
			rep.GetterType = gt.String()
		}
		if inv, err := r.SetInvoker(name); err == nil {
			rep.Setter = inv.Kind().String() + " " + inv.Member()
		}
		if st, err := r.SetterType(name); err == nil {
			rep.SetterType = st.String()
		}

		reports = append(reports, rep)
	}
	spew.Dump(reports)

	return nil
}
