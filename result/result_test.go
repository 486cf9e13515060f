package result_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/npillmayer/ecss/css"
	"github.com/npillmayer/ecss/cssom"
	. "github.com/npillmayer/ecss/result"
)

func TestResultSwitch(t *testing.T) {
	width := Ok(css.Px(10))
	bad := Err[css.Length](cssom.InvalidPropertyValueError{Name: "width"})

	var l css.Length
	var e error
	switch m := width.Match(); m {
	case m.Ok(&l):
		t.Logf("Ok(%s)", l)
	case m.Err(&e):
		t.Error("expected Ok(10px) not to match Err, did")
	}
	if l != css.Px(10) {
		t.Errorf("expected width to be 10px, is %#v", l)
	}

	switch m := bad.Match(); m {
	case m.Ok(&l):
		t.Error("expected Err not to match Ok, did")
	case m.Err(&e):
		t.Logf("Err: %s", e.Error())
	}
	var invalid cssom.InvalidPropertyValueError
	if !errors.As(e, &invalid) || invalid.Name != "width" {
		t.Errorf("expected invalid value error for width, is %v", e)
	}
}

func TestResultFrom(t *testing.T) {
	r := From(strconv.ParseFloat("1.5", 32))
	if x, err := r.Get(); err != nil || x != 1.5 {
		t.Errorf("expected Ok(1.5), is %g/%v", x, err)
	}
	r = From(strconv.ParseFloat("auto", 32))
	if r.IsOk() {
		t.Error("expected From(ParseFloat(\"auto\")) to be an error, isn't")
	}
}
