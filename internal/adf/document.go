// Package adf renders lead records as ADF (Automotive Data Format) XML.
// The rendering is pure: the same input always yields byte-identical output.
package adf

import "encoding/xml"

// Document is the <adf> root holding one prospect per lead.
type Document struct {
	XMLName   xml.Name   `xml:"adf"`
	Prospects []Prospect `xml:"prospect"`
}

// Prospect field order is the element order on the wire. Nil pointers and
// empty strings are omitted; only the documented placeholders may render
// empty elements.
type Prospect struct {
	IDs         []ID      `xml:"id"`
	RequestDate string    `xml:"requestdate,omitempty"`
	Vehicle     *Vehicle  `xml:"vehicle,omitempty"`
	Customer    *Customer `xml:"customer,omitempty"`
	Notes       string    `xml:"notes,omitempty"`
	Tags        []string  `xml:"tag,omitempty"`
	Provider    *Provider `xml:"provider,omitempty"`
	Vendor      *Vendor   `xml:"vendor,omitempty"`
}

type ID struct {
	Source string `xml:"source,attr,omitempty"`
	Value  string `xml:",chardata"`
}

type Vehicle struct {
	Interest string  `xml:"interest,attr"`
	Status   string  `xml:"status,attr,omitempty"`
	Year     string  `xml:"year,omitempty"`
	Make     string  `xml:"make,omitempty"`
	Model    string  `xml:"model,omitempty"`
	VIN      *string `xml:"vin"`
	Stock    *string `xml:"stock"`
}

type Customer struct {
	Contact  *Contact `xml:"contact"`
	Comments string   `xml:"comments,omitempty"`
}

type Contact struct {
	Names      []Name  `xml:"name"`
	Phones     []Phone `xml:"phone"`
	Email      string  `xml:"email,omitempty"`
	Address1   string  `xml:"address1,omitempty"`
	City       string  `xml:"city,omitempty"`
	State      string  `xml:"state,omitempty"`
	PostalCode string  `xml:"postalCode,omitempty"`
}

type Name struct {
	Part  string `xml:"part,attr"`
	Value string `xml:",chardata"`
}

type Phone struct {
	Type  string `xml:"type,attr,omitempty"`
	Value string `xml:",chardata"`
}

type Provider struct {
	Name           string `xml:"name,omitempty"`
	Service        string `xml:"service,omitempty"`
	SourceTypeName string `xml:"sourceTypeName,omitempty"`
}

type Vendor struct {
	VendorName string         `xml:"vendorname,omitempty"`
	Contact    *VendorContact `xml:"contact,omitempty"`
}

type VendorContact struct {
	Name Name `xml:"name"`
}

// Render marshals the document with the XML declaration and two-space
// indentation.
func (d Document) Render() ([]byte, error) {
	body, err := xml.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}
