// Package transportmock provides gomock-style doubles for transport.Conn
// and transport.Dialer, for tests that need to assert on call sequences
// (e.g. verifying Close sends exactly one DISCONNECT) rather than just
// observe bytes on a transport.Loopback pipe.
package transportmock

import (
	"context"
	"reflect"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/breezymind/mqttcore/transport"
)

// MockConn is a gomock-style mock of the Conn interface.
type MockConn struct {
	ctrl     *gomock.Controller
	recorder *MockConnRecorder
}

// MockConnRecorder records expected calls on a MockConn.
type MockConnRecorder struct {
	mock *MockConn
}

// NewMockConn returns a MockConn controlled by ctrl.
func NewMockConn(ctrl *gomock.Controller) *MockConn {
	m := &MockConn{ctrl: ctrl}
	m.recorder = &MockConnRecorder{mock: m}
	return m
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockConn) EXPECT() *MockConnRecorder {
	return m.recorder
}

func (m *MockConn) Send(buf []byte) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Send", buf)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockConnRecorder) Send(buf interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Send", reflect.TypeOf((*MockConn)(nil).Send), buf)
}

func (m *MockConn) Receive(buf []byte, timeout time.Duration) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Receive", buf, timeout)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockConnRecorder) Receive(buf, timeout interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Receive", reflect.TypeOf((*MockConn)(nil).Receive), buf, timeout)
}

func (m *MockConn) Close() error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Close")
	ret0, _ := ret[0].(error)
	return ret0
}

func (mr *MockConnRecorder) Close() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Close", reflect.TypeOf((*MockConn)(nil).Close))
}

// MockDialer is a gomock-style mock of the Dialer interface.
type MockDialer struct {
	ctrl     *gomock.Controller
	recorder *MockDialerRecorder
}

type MockDialerRecorder struct {
	mock *MockDialer
}

func NewMockDialer(ctrl *gomock.Controller) *MockDialer {
	m := &MockDialer{ctrl: ctrl}
	m.recorder = &MockDialerRecorder{mock: m}
	return m
}

func (m *MockDialer) EXPECT() *MockDialerRecorder {
	return m.recorder
}

func (m *MockDialer) Dial(ctx context.Context, timeout time.Duration) (transport.Conn, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Dial", ctx, timeout)
	ret0, _ := ret[0].(transport.Conn)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

func (mr *MockDialerRecorder) Dial(ctx, timeout interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Dial", reflect.TypeOf((*MockDialer)(nil).Dial), ctx, timeout)
}
