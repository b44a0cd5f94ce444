// Package metrics exports host activity as Prometheus metrics:
//
//	ddcci_commands_total{command,result}
//	ddcci_command_errors_total{code}
//	ddcci_command_duration_seconds{command}
//	ddcci_delay_wait_seconds
//	ddcci_edid_blocks_total{result}
package metrics
