package advisor

import "consultor-ai-api/internal/domain/entity"

// 生成失败时按支柱返回固定的叙事兜底；终端用户永远不会看到原始错误。
// 每条兜底都以开放式提问收尾，保持顾问对话的节奏。
var frameworkFallbacks = map[entity.Framework]string{
	entity.FrameworkPeople: "Hablemos de tu equipo. En mi experiencia, la mayoría de los problemas de crecimiento son problemas de personas: no tienes a los A-players correctos en los asientos correctos. " +
		"Mi regla es simple: contrata lento, despide rápido. Y recuerda que delegar no es abdicar; delega autoridad, nunca la responsabilidad final. " +
		"¿Cuál es hoy el rol de tu equipo que más te quita el sueño?",

	entity.FrameworkStrategy: "Vamos a lo estratégico. No puedes ser todo para todos: necesitas un nicho claro y una propuesta de valor que responda por qué un cliente te elegiría a ti sobre cualquier alternativa, incluyendo no hacer nada. " +
		"Si tu BHAG no te incomoda un poco, no es lo suficientemente grande. " +
		"¿Qué problema urgente y real le resuelves a tu cliente ideal mejor que nadie?",

	entity.FrameworkExecution: "La ejecución se gana con ritmo y disciplina. Junta semanal de 90 minutos, misma hora, misma agenda, sin excepciones. " +
		"Un scorecard de 5 a 15 métricas, cada una con un owner y un goal: verde o rojo, sin amarillos y sin excusas. " +
		"¿Qué número revisas cada semana que te diga, antes de fin de mes, si vas bien o mal?",

	entity.FrameworkCash: "El cash es oxígeno. Tu ciclo de conversión de efectivo es el tiempo que tarda tu dinero en volver a ti: cobra más rápido, paga más lento sin dañar relaciones, y reduce inventario. " +
		"Y no olvides el pricing: cobrar por el valor que generas siempre supera al costo más margen. " +
		"¿Cuántos días tarda hoy un peso en salir de tu empresa y regresar?",
}

const genericFallback = "Tuve un problema al procesar tu solicitud. ¿Podrías reformular tu pregunta?"

// fallbackResponse 返回支柱对应的兜底文案；未知支柱退回通用文案
func fallbackResponse(framework entity.Framework) string {
	if text, ok := frameworkFallbacks[framework]; ok {
		return text
	}
	return genericFallback
}
