package config

import (
	"testing"

	"github.com/quay/logcore"
	"github.com/quay/logcore/sink"
)

func TestRegistryBuildsBuiltinFormatter(t *testing.T) {
	doc, err := ParseDocument([]byte(`
type: string
pattern: "{message}"
`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	f, err := r.buildFormatter(doc)
	if err != nil {
		t.Fatal(err)
	}
	if f == nil {
		t.Fatal("nil formatter")
	}
}

func TestRegistryBuildsBuiltinHandler(t *testing.T) {
	doc, err := ParseDocument([]byte(`type: blocking`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	h, err := r.buildHandler(doc, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if h == nil {
		t.Fatal("nil handler")
	}
}

func TestRegistryHandlerTypeDefaultsToBlocking(t *testing.T) {
	doc, err := ParseDocument([]byte(`sinks: []`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if _, err := r.buildHandler(doc, nil, nil, nil); err != nil {
		t.Fatalf("expected the default \"blocking\" handler type to be used, got error: %v", err)
	}
}

func TestRegistryCustomHandlerOverride(t *testing.T) {
	doc, err := ParseDocument([]byte(`type: custom-handler`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	var gotSinks []logcore.Sink
	r.RegisterHandler("custom-handler", func(n Node, f logcore.Formatter, filter logcore.Filter, sinks []logcore.Sink) (*logcore.Handler, error) {
		gotSinks = sinks
		return logcore.NewHandler(f, filter, sinks...), nil
	})
	sinks := []logcore.Sink{sink.Null{}}
	if _, err := r.buildHandler(doc, nil, nil, sinks); err != nil {
		t.Fatal(err)
	}
	if len(gotSinks) != 1 {
		t.Fatal("custom handler factory did not receive the resolved sinks")
	}
}

func TestRegistryUnknownHandlerType(t *testing.T) {
	doc, err := ParseDocument([]byte(`type: not-a-real-handler`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if _, err := r.buildHandler(doc, nil, nil, nil); err == nil {
		t.Fatal("expected an error for an unregistered handler type")
	}
}

func TestRegistryUnknownSinkType(t *testing.T) {
	doc, err := ParseDocument([]byte(`type: not-a-real-sink`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if _, err := r.buildSink(doc); err == nil {
		t.Fatal("expected an error for an unregistered sink type")
	}
}

func TestRegistryCustomSinkOverride(t *testing.T) {
	doc, err := ParseDocument([]byte(`type: custom`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	var built bool
	r.RegisterSink("custom", func(Node) (logcore.Sink, error) {
		built = true
		return (logcore.Sink)(nil), nil
	})
	if _, err := r.buildSink(doc); err != nil {
		t.Fatal(err)
	}
	if !built {
		t.Fatal("custom factory was never invoked")
	}
}

func TestRegistryMissingTypeField(t *testing.T) {
	doc, err := ParseDocument([]byte(`pattern: "{message}"`))
	if err != nil {
		t.Fatal(err)
	}
	r := NewRegistry()
	if _, err := r.buildFormatter(doc); err == nil {
		t.Fatal("expected an error for a missing \"type\" field")
	}
}

func TestSeverityFilterFactoryAcceptsNameOrNumber(t *testing.T) {
	r := NewRegistry()

	named, err := ParseDocument([]byte(`type: severity
threshold: WARNING`))
	if err != nil {
		t.Fatal(err)
	}
	f, err := r.buildFilter(named)
	if err != nil {
		t.Fatal(err)
	}
	accept := logcore.NewRecord(logcore.SeverityError, "m", nil)
	if f(accept) != logcore.Accept {
		t.Fatal("named WARNING threshold should accept an error-severity record")
	}

	numeric, err := ParseDocument([]byte(`type: severity
threshold: "4"`))
	if err != nil {
		t.Fatal(err)
	}
	f2, err := r.buildFilter(numeric)
	if err != nil {
		t.Fatal(err)
	}
	if f2(accept) != logcore.Accept {
		t.Fatal("numeric threshold \"4\" should accept an error-severity record")
	}
}
