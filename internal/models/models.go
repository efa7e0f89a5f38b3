package models

import (
	"encoding/json"
	"errors"
)

// RawEstablishment models an item of the upstream establishments collection.
type RawEstablishment struct {
	ID           ID         `json:"idEstabSisbi"`
	Name         OptString  `json:"nome"`
	StateCode    OptString  `json:"sgUf"`
	Municipality OptString  `json:"nmMunicipio"`
	Status       OptString  `json:"csSituacaoEstabelecimento"`
	Person       *RawPerson `json:"pessoa"`
}

// RawPerson is the owner sub-object of an establishment.
type RawPerson struct {
	LegalEntity *RawLegalEntity `json:"pessoaJuridica"`
}

// RawLegalEntity holds the company registration of the owner.
type RawLegalEntity struct {
	TaxID OptString `json:"nrCnpj"`
}

// TaxID resolves the nested legal-entity tax id, if any.
func (r RawEstablishment) TaxID() OptString {
	if r.Person == nil || r.Person.LegalEntity == nil {
		return OptString{}
	}
	return r.Person.LegalEntity.TaxID
}

// RawCapacityRecord models an item of the upstream capacities collection.
type RawCapacityRecord struct {
	Classification  *RawClassification  `json:"estabSisbiClassificacao"`
	SpeciesCategory *RawSpeciesCategory `json:"categEstabEspecie"`
	Capacity        Quantity            `json:"qtCapacidade"`
	CapacityType    *RawCapacityType    `json:"tipoCapacProducao"`
}

type RawClassification struct {
	Establishment *RawEstablishmentRef `json:"estabelecimentoSisbi"`
}

type RawEstablishmentRef struct {
	ID ID `json:"idEstabSisbi"`
}

type RawSpeciesCategory struct {
	Species *RawSpecies `json:"especie"`
}

type RawSpecies struct {
	Name OptString `json:"nmEspecie"`
}

type RawCapacityType struct {
	Name OptString `json:"nmTipoCapacProducao"`
}

// EstablishmentID resolves the nested establishment reference.
func (r RawCapacityRecord) EstablishmentID() ID {
	if r.Classification == nil || r.Classification.Establishment == nil {
		return ""
	}
	return r.Classification.Establishment.ID
}

// SpeciesName resolves the nested species label ("" when absent).
func (r RawCapacityRecord) SpeciesName() string {
	if r.SpeciesCategory == nil || r.SpeciesCategory.Species == nil {
		return ""
	}
	return r.SpeciesCategory.Species.Name.Value
}

// Unit resolves the capacity unit label ("" when absent).
func (r RawCapacityRecord) Unit() string {
	if r.CapacityType == nil {
		return ""
	}
	return r.CapacityType.Name.Value
}

// RawEstablishmentDetail models the single-establishment upstream resource.
type RawEstablishmentDetail struct {
	Animals RawAnimals `json:"animais"`
}

// RawAnimal is one per-species slaughter throughput entry.
type RawAnimal struct {
	Species          OptString `json:"especie"`
	SlaughterPerDay  LooseInt  `json:"capacidadeAbateDia"`
	SlaughterPerHour LooseInt  `json:"capacidadeAbateHora"`
}

// RawAnimals decodes an array of animals; a non-array value is empty and
// non-object elements are skipped.
type RawAnimals []RawAnimal

func (a *RawAnimals) UnmarshalJSON(b []byte) error {
	*a = nil
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil
	}
	out := make(RawAnimals, 0, len(items))
	for _, item := range items {
		if !IsObject(item) {
			continue
		}
		var animal RawAnimal
		if err := DecodeLenient(item, &animal); err != nil {
			continue
		}
		out = append(out, animal)
	}
	*a = out
	return nil
}

// Capacities is the fixed per-species capacity block of a merged record.
type Capacities struct {
	Bovine       float64 `json:"bovine"`
	BovineHourly float64 `json:"bovineHourly"`
	Swine        float64 `json:"swine"`
	Goat         float64 `json:"goat"`
	Sheep        float64 `json:"sheep"`
	Buffalo      float64 `json:"buffalo"`
	Other        float64 `json:"other"`
}

// DailyTotal sums every day-capacity field (hourly excluded).
func (c Capacities) DailyTotal() float64 {
	return c.Bovine + c.Swine + c.Goat + c.Sheep + c.Buffalo + c.Other
}

// HasBovine reports whether any bovine capacity, daily or hourly, is present.
func (c Capacities) HasBovine() bool {
	return c.Bovine > 0 || c.BovineHourly > 0
}

// MergedEstablishment is the listing output record.
type MergedEstablishment struct {
	ID           ID         `json:"id"`
	Name         string     `json:"name"`
	StateCode    string     `json:"stateCode"`
	Municipality string     `json:"municipality"`
	Status       string     `json:"status"`
	TaxID        string     `json:"taxId"`
	Capacities   Capacities `json:"capacities"`
}

// SlaughterDetail is the detail output record.
type SlaughterDetail struct {
	Bovine       int64 `json:"bovine"`
	BovineHourly int64 `json:"bovineHourly"`
	Swine        int64 `json:"swine"`
	Goat         int64 `json:"goat"`
	Sheep        int64 `json:"sheep"`
	Buffalo      int64 `json:"buffalo"`
	Other        int64 `json:"other"`
}

// DecodeLenient unmarshals b into v, tolerating fields whose JSON type does
// not match the target: those fields are left at their zero value.
func DecodeLenient(b []byte, v any) error {
	err := json.Unmarshal(b, v)
	var typeErr *json.UnmarshalTypeError
	if err != nil && errors.As(err, &typeErr) {
		return nil
	}
	return err
}
