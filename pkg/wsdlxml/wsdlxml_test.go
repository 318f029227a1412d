package wsdlxml

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/wsdlkit/pkg/description"
	"github.com/getmockd/wsdlkit/pkg/importer"
	"github.com/getmockd/wsdlkit/pkg/reflector"
	"github.com/getmockd/wsdlkit/pkg/schema"
	"github.com/getmockd/wsdlkit/pkg/service"
	"github.com/getmockd/wsdlkit/pkg/xmlns"
)

const stockNS = "http://example.com/stockquote"

func stockQuote(t *testing.T) *description.Definitions {
	t.Helper()
	defs, err := DecodeFile(filepath.Join("testdata", "stockquote.wsdl"))
	require.NoError(t, err)
	return defs
}

func TestDecode_Graph(t *testing.T) {
	defs := stockQuote(t)

	assert.Equal(t, "StockQuote", defs.Name)
	assert.Equal(t, stockNS, defs.TargetNamespace)
	assert.Len(t, defs.Messages(), 6)
	assert.Len(t, defs.PortTypes(), 3)
	assert.Len(t, defs.Bindings(), 4)

	in := defs.Message(xmlns.Name(stockNS, "GetQuoteSoapIn"))
	require.NotNil(t, in)
	require.Len(t, in.Parts, 1)
	assert.Equal(t, xmlns.Name(stockNS, "GetQuote"), in.Parts[0].Element)
	assert.Empty(t, defs.Message(xmlns.Name(stockNS, "GetStatusHttpGetIn")).Parts)
	assert.Equal(t, xmlns.XSDName("string"), defs.Message(xmlns.Name(stockNS, "GetStatusHttpGetOut")).Parts[0].Type)

	pt := defs.PortType(xmlns.Name(stockNS, "StockQuoteSoap"))
	require.NotNil(t, pt)
	op := pt.Operation("GetQuote")
	require.NotNil(t, op)
	assert.Equal(t, "Returns the latest quote for a symbol.", op.Documentation)
	assert.Equal(t, xmlns.Name(stockNS, "GetQuoteSoapOut"), op.Output.Message)

	svc := defs.Service("StockQuote")
	require.NotNil(t, svc)
	require.Len(t, svc.Ports, 4)
	addr, ok := description.Find[description.AddressKind](&svc.Port("StockQuoteSoap12").Extensions)
	require.True(t, ok)
	assert.Equal(t, "http://example.com/stockquote.asmx", addr.Location())
	_, ok = description.Find[*description.SOAP12Address](&svc.Port("StockQuoteSoap12").Extensions)
	assert.True(t, ok)
}

func TestDecode_Extensions(t *testing.T) {
	defs := stockQuote(t)

	soap := defs.Binding(xmlns.Name(stockNS, "StockQuoteSoap"))
	require.NotNil(t, soap)
	sb, ok := description.Find[*description.SOAPBinding](&soap.Extensions)
	require.True(t, ok)
	assert.Equal(t, "http://schemas.xmlsoap.org/soap/http", sb.Transport)
	assert.Equal(t, description.StyleDocument, sb.Style)
	u, ok := description.Find[*description.Unknown](&soap.Extensions)
	require.True(t, ok)
	assert.Equal(t, xmlns.Name("http://schemas.xmlsoap.org/ws/2004/09/policy", "PolicyReference"), u.Name)
	assert.True(t, u.Required)

	soap12 := defs.Binding(xmlns.Name(stockNS, "StockQuoteSoap12"))
	require.NotNil(t, soap12)
	_, ok = description.Find[*description.SOAPBinding](&soap12.Extensions)
	assert.False(t, ok, "SOAP 1.2 binding must not satisfy the exact SOAP 1.1 lookup")
	_, ok = description.Find[description.SOAPBindingKind](&soap12.Extensions)
	assert.True(t, ok)
	op12, ok := description.Find[*description.SOAP12Operation](&soap12.Operation("GetQuote").Extensions)
	require.True(t, ok)
	assert.True(t, op12.SOAPActionRequired)
	body, ok := description.Find[description.SOAPBodyKind](&soap12.Operation("GetQuote").Input.Extensions)
	require.True(t, ok)
	assert.Equal(t, []string{"parameters"}, body.SOAP().Parts)

	get := defs.Binding(xmlns.Name(stockNS, "StockQuoteHttpGet"))
	require.NotNil(t, get)
	hb, ok := description.Find[*description.HTTPBinding](&get.Extensions)
	require.True(t, ok)
	assert.Equal(t, "GET", hb.Verb)
	status := get.Operation("GetStatus")
	_, ok = description.Find[*description.HTTPURLEncoded](&status.Input.Extensions)
	assert.True(t, ok)
	tb, ok := description.Find[*description.MIMETextBinding](&status.Output.Extensions)
	require.True(t, ok)
	require.Len(t, tb.Matches, 2)

	result := tb.Matches[0]
	assert.Equal(t, "GetStatusResult", result.Name)
	assert.Equal(t, "(.*)", result.Pattern)
	assert.Equal(t, 1, result.Group)
	assert.Equal(t, 1, result.Repeats)
	assert.True(t, result.IgnoreCase)

	rows := tb.Matches[1]
	assert.Equal(t, "<tr>(.+?)</tr>", rows.Pattern)
	assert.Equal(t, description.RepeatsUnbounded, rows.Repeats)
	require.Len(t, rows.Matches, 1)
	cell := rows.Matches[0]
	assert.Equal(t, "int", cell.Type)
	assert.Equal(t, 2, cell.Capture)
	assert.Equal(t, 3, cell.Repeats)

	post := defs.Binding(xmlns.Name(stockNS, "StockQuoteHttpPost"))
	require.NotNil(t, post)
	content, ok := description.Find[*description.MIMEContent](&post.Operation("GetQuote").Input.Extensions)
	require.True(t, ok)
	assert.Equal(t, description.ContentTypeForm, content.Type)
	mx, ok := description.Find[*description.MIMEXML](&post.Operation("GetQuote").Output.Extensions)
	require.True(t, ok)
	assert.Equal(t, "Body", mx.Part)
}

func TestDecode_Schema(t *testing.T) {
	defs := stockQuote(t)

	frags := defs.Types.Fragments(stockNS)
	require.Len(t, frags, 1)
	sc := frags[0]
	assert.True(t, sc.HasImport(xmlns.SOAPEnc))

	wrapper := sc.Element("GetQuote")
	require.NotNil(t, wrapper)
	require.NotNil(t, wrapper.ComplexType)
	require.Len(t, wrapper.ComplexType.Sequence, 1)
	symbol := wrapper.ComplexType.Sequence[0]
	assert.Equal(t, 0, symbol.MinOccurs)
	assert.Equal(t, 1, symbol.MaxOccurs)
	assert.Equal(t, xmlns.XSDName("string"), symbol.Type)
	assert.Same(t, wrapper.ComplexType, symbol.Parent())

	quote := sc.ComplexType("Quote")
	require.NotNil(t, quote)
	require.Len(t, quote.Sequence, 3)
	tags := quote.Sequence[2]
	assert.Equal(t, schema.Unbounded, tags.MaxOccurs)
	assert.True(t, tags.Nillable)
	assert.Equal(t, 1, quote.Sequence[0].MinOccurs)

	arr := sc.ComplexType("ArrayOfString")
	require.NotNil(t, arr)
	require.NotNil(t, arr.ComplexContent)
	r := arr.ComplexContent.Restriction
	require.NotNil(t, r)
	assert.Equal(t, xmlns.Name(xmlns.SOAPEnc, "Array"), r.Base)
	require.Len(t, r.Attributes, 1)
	assert.Equal(t, xmlns.Name(xmlns.SOAPEnc, "arrayType"), r.Attributes[0].Ref)
	assert.Equal(t, xmlns.XSDName("string"), r.Attributes[0].ArrayOf)

	ex := sc.SimpleType("Exchange")
	require.NotNil(t, ex)
	assert.Equal(t, []string{"NYSE", "NASDAQ"}, ex.Enumeration)

	ws := schema.NewCompiler(nil).Compile(defs.Types)
	assert.False(t, ws.HasErrors(), ws.Strings())
}

func TestDecode_Import(t *testing.T) {
	defs := stockQuote(t)

	im := importer.New([]importer.Protocol{
		importer.NewSOAP11(nil),
		importer.NewSOAP12(nil),
		importer.NewHTTPPost(),
		importer.NewHTTPGet(),
	}, importer.Options{}, nil)
	res, err := im.Import(defs)
	require.NoError(t, err)

	assert.True(t, res.Warnings.Has(importer.RequiredExtensionsIgnored))
	assert.Nil(t, res.Client("StockQuoteSoap"))

	soap12 := res.Client("StockQuoteSoap12")
	require.NotNil(t, soap12)
	quote := soap12.Stub("GetQuote")
	require.NotNil(t, quote)
	assert.True(t, quote.ActionRequired)
	require.Len(t, quote.Params, 1)
	assert.Equal(t, "symbol", quote.Params[0].Name)
	assert.Equal(t, "Quote", quote.Return.Type.Name)

	get := res.Client("StockQuoteHttpGet")
	require.NotNil(t, get)
	status := get.Stub("GetStatus")
	require.NotNil(t, status)
	assert.Equal(t, importer.DecoderText, status.Return.Decoder)
	assert.Empty(t, status.Params)

	post := res.Client("StockQuoteHttpPost")
	require.NotNil(t, post)
	pq := post.Stub("GetQuote")
	require.NotNil(t, pq)
	assert.Equal(t, importer.EncodingForm, pq.Params[0].Encoding)
	assert.Equal(t, importer.DecoderXML, pq.Return.Decoder)
}

func calculator() *service.Class {
	return &service.Class{
		Name:      "Calculator",
		Namespace: "http://example.com/calc",
		Location:  "calc.asmx",
		Methods: []*service.Method{
			{
				Name:   "Add",
				Params: []service.Param{{Name: "a", Type: service.Scalar("int")}, {Name: "b", Type: service.Scalar("int")}},
				Return: service.Scalar("int"),
			},
			{
				Name:   "Tally",
				Params: []service.Param{{Name: "names", Type: service.ArrayOf(service.Scalar("string"))}},
				Return: service.Scalar("string"),
			},
			{
				Name: "Move",
				Params: []service.Param{{Name: "p", Type: service.Complex("Point",
					service.Field{Name: "x", Type: service.Scalar("int")},
					service.Field{Name: "y", Type: service.Scalar("int")},
				)}},
				Return: service.Stream(),
			},
		},
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	class := calculator()
	defs := description.New(class.Name, class.Namespace)
	rf := reflector.New(defs, nil)
	ctx := reflector.NewContext(class, "http://localhost/svc/", nil)
	for _, p := range []reflector.Protocol{
		reflector.NewSOAP11(), reflector.NewSOAP12(), reflector.NewHTTPGet(), reflector.NewHTTPPost(nil, nil),
	} {
		require.NoError(t, rf.Reflect(p, class, ctx))
	}

	first, err := EncodeBytes(defs)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(first, []byte(`<?xml version="1.0" encoding="utf-8"?>`)))
	assert.Contains(t, string(first), `xmlns:tns="http://example.com/calc"`)

	decoded, err := DecodeBytes(first)
	require.NoError(t, err)
	second, err := EncodeBytes(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	newImporter := func() *importer.Importer {
		return importer.New([]importer.Protocol{
			importer.NewSOAP11(nil), importer.NewSOAP12(nil), importer.NewHTTPPost(), importer.NewHTTPGet(),
		}, importer.Options{}, nil)
	}
	want, err := newImporter().Import(defs)
	require.NoError(t, err)
	got, err := newImporter().Import(decoded)
	require.NoError(t, err)
	if !assert.Equal(t, want.Clients, got.Clients) {
		t.Log(spew.Sdump(got.Clients))
	}
	assert.Len(t, got.Clients, 4)
}

func TestEncode_UnknownExtension(t *testing.T) {
	defs := description.New("Ext", "urn:ext")
	b := &description.Binding{Name: "ExtBinding", Type: defs.QName("ExtPort")}
	b.Extensions.Add(&description.Unknown{Name: xmlns.Name("urn:vendor", "feature"), Required: true})
	b.Extensions.Add(&description.Unknown{Name: xmlns.Name("urn:vendor", "hint")})
	require.NoError(t, defs.AddBinding(b))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, defs))
	assert.Contains(t, buf.String(), `<ns1:feature wsdl:required="true"/>`)
	assert.Contains(t, buf.String(), `xmlns:ns1="urn:vendor"`)

	back, err := Decode(&buf)
	require.NoError(t, err)
	unknowns := description.FindAll[*description.Unknown](&back.Binding(back.QName("ExtBinding")).Extensions)
	require.Len(t, unknowns, 2)
	assert.True(t, unknowns[0].Required)
	assert.False(t, unknowns[1].Required)
	assert.Equal(t, "hint", unknowns[1].Name.Local)
}

func TestEncodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.wsdl")
	require.NoError(t, EncodeFile(path, stockQuote(t)))

	back, err := DecodeFile(path)
	require.NoError(t, err)
	assert.Len(t, back.Bindings(), 4)
}

func TestDecode_Errors(t *testing.T) {
	const wsdlOpen = `<wsdl:definitions xmlns:wsdl="http://schemas.xmlsoap.org/wsdl/" targetNamespace="urn:t" xmlns:tns="urn:t">`

	tests := []struct {
		name    string
		doc     string
		message string
		line    int
	}{
		{name: "empty", doc: "   ", message: "empty document"},
		{name: "not xml", doc: "<definitions>\n</other>\n", message: "failed to parse XML", line: 2},
		{name: "wsdl 2.0", doc: `<description xmlns="http://www.w3.org/ns/wsdl"/>`, message: "WSDL 2.0"},
		{name: "wrong root", doc: `<definitions/>`, message: "expected root element"},
		{
			name:    "undeclared prefix",
			doc:     wsdlOpen + `<wsdl:message name="M"><wsdl:part name="p" element="x:E"/></wsdl:message></wsdl:definitions>`,
			message: `message M: attribute element: undeclared namespace prefix "x"`,
		},
		{
			name:    "nameless binding",
			doc:     wsdlOpen + `<wsdl:binding type="tns:P"/></wsdl:definitions>`,
			message: "binding: name is required",
		},
		{
			name:    "duplicate message",
			doc:     wsdlOpen + `<wsdl:message name="M"/><wsdl:message name="M"/></wsdl:definitions>`,
			message: "duplicate name",
		},
		{
			name: "bad occurrence",
			doc: wsdlOpen + `<wsdl:types><s:schema xmlns:s="http://www.w3.org/2001/XMLSchema" targetNamespace="urn:t">` +
				`<s:element name="E" minOccurs="many"/></s:schema></wsdl:types></wsdl:definitions>`,
			message: `minOccurs "many" is not an integer`,
		},
		{
			name: "bad match group",
			doc: wsdlOpen + `<wsdl:binding name="B" type="tns:P" xmlns:tm="http://microsoft.com/wsdl/mime/textMatching/">` +
				`<wsdl:operation name="O"><wsdl:output><tm:text><tm:match name="m" pattern="x" group="one"/></tm:text>` +
				`</wsdl:output></wsdl:operation></wsdl:binding></wsdl:definitions>`,
			message: `attribute group: "one" is not an integer`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := DecodeBytes([]byte(tt.doc))
			assert.Nil(t, defs)
			require.Error(t, err)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Contains(t, err.Error(), tt.message)
			if tt.line > 0 {
				assert.Equal(t, tt.line, de.Line)
			}
		})
	}
}

func TestDecodeFile_NamesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.wsdl")
	require.NoError(t, os.WriteFile(path, []byte(`<types/>`), 0644))

	_, err := DecodeFile(path)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, path, de.File)
	assert.True(t, strings.HasPrefix(err.Error(), path+": "))

	_, err = DecodeFile(filepath.Join(t.TempDir(), "missing.wsdl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read WSDL file")
	assert.False(t, errors.As(err, &de))
}

func TestDecodeError_Format(t *testing.T) {
	err := &DecodeError{File: "svc.wsdl", Line: 3, Column: 7, Context: "binding B", Message: "invalid"}
	assert.Equal(t, "svc.wsdl: binding B: invalid (line 3, column 7)", err.Error())
}
