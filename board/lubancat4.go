package board

import (
	"bringup-go/drivers/rk8602"
	"bringup-go/drivers/swi2c"
	"bringup-go/hal"
	"bringup-go/platform/rockchip"
	"bringup-go/power"
)

// I2C0_M2 on GPIO0_PD1/PD2.
const i2c0M2 hal.Function = 3

// NPU clock gates and soft resets: all bits of CON27..29. A zero bit opens
// a gate or releases a reset.
var (
	npuClocks = []RegWrite{
		{Name: "npu_gate27", Block: rockchip.CRU, Offset: rockchip.GateCon(27), Value: rockchip.HiWord(0xFFFF, 0)},
		{Name: "npu_gate28", Block: rockchip.CRU, Offset: rockchip.GateCon(28), Value: rockchip.HiWord(0xFFFF, 0)},
		{Name: "npu_gate29", Block: rockchip.CRU, Offset: rockchip.GateCon(29), Value: rockchip.HiWord(0xFFFF, 0)},
	}
	npuResets = []RegWrite{
		{Name: "npu_srst27", Block: rockchip.CRU, Offset: rockchip.SoftRstCon(27), Value: rockchip.HiWord(0xFFFF, 0)},
		{Name: "npu_srst28", Block: rockchip.CRU, Offset: rockchip.SoftRstCon(28), Value: rockchip.HiWord(0xFFFF, 0)},
		{Name: "npu_srst29", Block: rockchip.CRU, Offset: rockchip.SoftRstCon(29), Value: rockchip.HiWord(0xFFFF, 0)},
	}
)

// LubanCat4 is the EmbedFire LubanCat 4 (RK3588S) with an RK8602 on the NPU
// rail, reached over GPIO0_PD1 (SCL) and GPIO0_PD2 (SDA).
var LubanCat4 = Board{
	Name: "lubancat4",

	Bus: swi2c.Lines{
		SCL:        hal.P(0, hal.PortD, 1),
		SDA:        hal.P(0, hal.PortD, 2),
		Peripheral: i2c0M2,
	},
	FrequencyKHz: 100,
	Attempts:     5,

	Addr:        rk8602.AddressDefault,
	VoltageReg:  rk8602.RegVSel0,
	EnableReg:   rk8602.RegEnable,
	EnableValue: rk8602.EnableBit,
	Microvolts:  800000,

	Settle: Settle{
		ClaimUs:   20,
		VoltageUs: 500,
		EnableUs:  1000,
		ClocksUs:  50,
		ResetsUs:  50,
	},

	Clocks: npuClocks,
	Resets: npuResets,

	MasterRails: []power.Rail{
		{ID: "vdd_gpu_s0", Regulator: "BUCK1", Microvolts: 750000},
		{ID: "vdd_log_s0", Regulator: "BUCK3", Microvolts: 750000},
		{ID: "vdd_vdenc_s0", Regulator: "BUCK4", Microvolts: 750000},
		{ID: "vdd_ddr_s0", Regulator: "BUCK5", Microvolts: 850000},
		{ID: "vcc_2v0_pldo_s3", Regulator: "BUCK7", Microvolts: 2000000},
		{ID: "vcc_3v3_s3", Regulator: "BUCK8", Microvolts: 3300000},
		{ID: "vcc_1v8_s3", Regulator: "BUCK10", Microvolts: 1800000},
		{ID: "vdd_0v75_s3", Regulator: "NLDO1", Microvolts: 750000},
		{ID: "avdd_ddr_pll_s0", Regulator: "NLDO2", Microvolts: 850000},
		{ID: "avdd_0v75_s0", Regulator: "NLDO3", Microvolts: 750000},
		{ID: "avdd_0v85_s0", Regulator: "NLDO4", Microvolts: 850000},
		{ID: "vcc_1v8_s0", Regulator: "PLDO1", Microvolts: 1800000},
		{ID: "avcc_1v8_s0", Regulator: "PLDO2", Microvolts: 1800000},
		{ID: "avdd_1v2_s0", Regulator: "PLDO3", Microvolts: 1200000},
		{ID: "avcc_3v3_s0", Regulator: "PLDO4", Microvolts: 3300000},
		{ID: "vccio_sd_s0", Regulator: "PLDO5", Microvolts: 3300000},
		{ID: "pldo6_s3", Regulator: "PLDO6", Microvolts: 1800000},
	},
	NPURails: []power.Rail{
		{ID: rk8602.RailName, Regulator: "RK8602", Microvolts: 800000},
	},
	Skipped: []power.Skipped{
		{Rail: power.Rail{ID: "vdd2_ddr_s3", Regulator: "BUCK6", Microvolts: 750000}, Reason: "no voltage in device tree (fixed/slave)"},
		{Rail: power.Rail{ID: "", Regulator: "NLDO5", Microvolts: 750000}, Reason: "not present in device tree"},
	},
}
