package machine

import "github.com/statim-lang/statimc/internal/siir"

// StackSlot is one entry in a function's ordered frame, laid out by
// FunctionStackInfo.AddSlot the way stacking.ComputeLayout lays out a
// Linear function's activation record: offset grows downward from the
// frame base (SystemV x86-64 convention), each slot aligned to its own
// requirement (spec §3.7).
type StackSlot struct {
	Offset int64 // byte offset from the frame base, negative
	Size   int64
	Align  int64
}

// FunctionStackInfo is the ordered list of frame slots a function
// needs: spill slots for locals that escape registers, and any
// outgoing-argument area. Offsets are assigned as slots are added, so
// callers should add slots in a stable order (e.g. AST declaration
// order) for deterministic output (spec §8's determinism property).
type FunctionStackInfo struct {
	slots []StackSlot
	next  int64
}

// AddSlot reserves size bytes aligned to align and returns the frame
// slot describing it.
func (s *FunctionStackInfo) AddSlot(size, align int64) StackSlot {
	s.next = alignUp(s.next+size, align)
	slot := StackSlot{Offset: -s.next, Size: size, Align: align}
	s.slots = append(s.slots, slot)
	return slot
}

// Slots returns every reserved slot in allocation order.
func (s *FunctionStackInfo) Slots() []StackSlot { return s.slots }

// FrameSize returns the total bytes reserved across all slots, before
// any final stack-alignment padding.
func (s *FunctionStackInfo) FrameSize() int64 { return s.next }

func alignUp(n, align int64) int64 {
	if align <= 0 {
		return n
	}
	return ((n + align - 1) / align) * align
}

// VRegInfo records what instruction selection and (eventually) register
// allocation know about one virtual register: its class, the
// instruction-index span it is live across, and its final physical
// assignment once allocation has run (spec §3.7). LiveStart/LiveEnd are
// left at their zero value until a liveness pass populates them; this
// repository does not implement register allocation, so Phys stays
// NoRegister unless BindPhysical pre-colors the register (selection
// does this for incoming arguments).
type VRegInfo struct {
	Class               RegisterClass
	LiveStart, LiveEnd  int
	Phys                Register
}

// FunctionRegisterInfo maps each virtual register minted while
// selecting one function to its VRegInfo.
type FunctionRegisterInfo struct {
	byReg map[Register]*VRegInfo
}

func newFunctionRegisterInfo() *FunctionRegisterInfo {
	return &FunctionRegisterInfo{byReg: make(map[Register]*VRegInfo)}
}

// Declare records a freshly minted virtual register's class. Selection
// calls this once per IR result id it maps to a virtual register.
func (r *FunctionRegisterInfo) Declare(reg Register, class RegisterClass) {
	r.byReg[reg] = &VRegInfo{Class: class}
}

// Get returns the info for reg, or nil if it was never declared.
func (r *FunctionRegisterInfo) Get(reg Register) *VRegInfo { return r.byReg[reg] }

// BindPhysical records that reg is pre-colored to phys (e.g. an
// incoming argument's ABI register) ahead of any allocation pass.
// Selection never emits a copy instruction for this binding; it exists
// so a later allocator (or the assembler this repository does not
// ship) knows where the value must ultimately live.
func (r *FunctionRegisterInfo) BindPhysical(reg, phys Register) {
	if info, ok := r.byReg[reg]; ok {
		info.Phys = phys
	}
}

// MachineFunction owns a doubly-linked chain of MachineBasicBlocks plus
// the per-function stack and register bookkeeping instruction
// selection and the eventual allocator need (spec §3.7).
type MachineFunction struct {
	name string

	head, tail *MachineBasicBlock
	blockByOrigin map[*siir.BasicBlock]*MachineBasicBlock

	Stack    FunctionStackInfo
	Registers *FunctionRegisterInfo

	nextVReg uint32
}

// NewMachineFunction creates an empty function ready to receive blocks
// from instruction selection.
func NewMachineFunction(name string) *MachineFunction {
	return &MachineFunction{
		name:          name,
		blockByOrigin: make(map[*siir.BasicBlock]*MachineBasicBlock),
		Registers:     newFunctionRegisterInfo(),
	}
}

func (f *MachineFunction) Name() string { return f.name }

// Blocks returns the function's machine blocks in layout order.
func (f *MachineFunction) Blocks() []*MachineBasicBlock {
	out := make([]*MachineBasicBlock, 0)
	for b := f.head; b != nil; b = b.next {
		out = append(out, b)
	}
	return out
}

// Entry returns the function's entry block, or nil if it has none yet.
func (f *MachineFunction) Entry() *MachineBasicBlock { return f.head }

// NewBlock creates and appends a fresh machine block selected from
// origin.
func (f *MachineFunction) NewBlock(origin *siir.BasicBlock) *MachineBasicBlock {
	b := newMachineBasicBlock(origin)
	b.parent = f
	b.prev = f.tail
	if f.tail != nil {
		f.tail.next = b
	} else {
		f.head = b
	}
	f.tail = b
	if origin != nil {
		f.blockByOrigin[origin] = b
	}
	return b
}

// BlockFor looks up the machine block already selected from origin, if
// any (used by InstSelection to resolve JUMP/BRANCH_IF targets to
// blocks it may not have reached yet in layout order... in practice
// every IR block is pre-created before operand resolution, so this
// always succeeds for a verified module).
func (f *MachineFunction) BlockFor(origin *siir.BasicBlock) (*MachineBasicBlock, bool) {
	b, ok := f.blockByOrigin[origin]
	return b, ok
}

// FreshVReg mints a new virtual register of the given class and
// records it in the function's register info.
func (f *MachineFunction) FreshVReg(class RegisterClass) Register {
	reg := VirtualRegister(f.nextVReg)
	f.nextVReg++
	f.Registers.Declare(reg, class)
	return reg
}
